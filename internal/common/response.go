// File: internal/common/response.go
package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RespondWithError aborts the request with the uniform error body.
// Errors that are not *APIError become a 500 without leaking their text.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get(LoggerKey); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// BindJSON decodes the request body into obj and maps failures onto APIErrors.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return NewValidationAPIError(FormatValidationErrors(verrs))
		}
		return ErrValidation.WithMessage("Request body is not valid JSON.")
	}
	return nil
}

// RespondOK sends a 200 response with body serialized as-is.
func RespondOK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// RespondCreated sends a 201 response with body serialized as-is.
func RespondCreated(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}
