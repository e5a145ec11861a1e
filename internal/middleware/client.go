package middleware

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/gin-gonic/gin"
)

// ClientTypeMiddleware validates the x-client-type header and attaches the
// resolved client type to the request context.
func ClientTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(common.ClientTypeHeader)
		if raw == "" {
			common.RespondWithError(c, common.ErrBadRequest.WithMessage("Missing x-client-type header"))
			return
		}

		ct, ok := domain.ParseClientType(raw)
		if !ok {
			common.RespondWithError(c, common.ErrBadRequest.WithMessage(
				"Invalid client type. Must be one of: "+domain.ClientTypeList()))
			return
		}

		common.SetClientType(c, ct)
		c.Next()
	}
}
