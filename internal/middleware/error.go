// File: internal/middleware/error.go
package middleware

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler maps the last error pushed with c.Error onto the uniform error
// body. Unrecognized errors become 500 and are logged, never echoed.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		apiErr, ok := common.IsAPIError(err)
		if !ok {
			logger.Error("Unhandled application error",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", common.GetRequestID(c)),
			)
			apiErr = common.ErrInternalServer
		}
		c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
	}
}

// NoRoute answers unknown paths with the uniform 404 body.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithMessage("Route "+c.Request.Method+" "+c.Request.URL.Path+" not found"))
	}
}

// NoMethod answers known paths hit with an unsupported method.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.RespondWithError(c, common.ErrMethodNotAllowed)
	}
}

// Recovery turns panics into the uniform 500 body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", common.GetRequestID(c)),
			zap.Stack("stack"),
		)
		common.RespondWithError(c, common.ErrInternalServer)
	})
}
