// File: internal/middleware/auth.go
package middleware

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func identityFromClaims(claims *shared.Claims) domain.Identity {
	return domain.Identity{
		UserID:      claims.UserID,
		Email:       claims.Email,
		PhoneNumber: claims.PhoneNumber,
		Role:        domain.Role(claims.Role),
	}
}

// AuthMiddleware requires a valid bearer token and attaches the caller's identity.
func AuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Missing or invalid authorization header"))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Invalid or expired token"))
			return
		}

		common.SetIdentity(c, identityFromClaims(claims))
		c.Next()
	}
}

// OptionalAuthMiddleware attaches an identity when a valid bearer token is
// present and otherwise lets the request through anonymously.
func OptionalAuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Ignoring invalid optional token", zap.Error(err))
			c.Next()
			return
		}

		common.SetIdentity(c, identityFromClaims(claims))
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := common.GetIdentity(c)
		if !ok {
			common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Authentication required"))
			return
		}
		if !identity.IsAdmin() {
			common.RespondWithError(c, common.ErrForbidden.WithMessage("Admin access required"))
			return
		}
		c.Next()
	}
}
