// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetTokenFromContext returns the bearer token from the Authorization header.
// It returns "" when the header is absent or not of the form "Bearer <token>".
func GetTokenFromContext(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != AuthorizationTypeBearer || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(IdentityKey, id)
}

// GetIdentity returns the authenticated caller, if any.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return domain.Identity{}, false
	}
	id, ok := val.(domain.Identity)
	return id, ok
}

// GetUserID returns the caller's id, or nil when the request is anonymous.
func GetUserID(c *gin.Context) *uuid.UUID {
	id, ok := GetIdentity(c)
	if !ok || id.UserID == uuid.Nil {
		return nil
	}
	uid := id.UserID
	return &uid
}

// SetClientType stores the validated client type on the request context.
func SetClientType(c *gin.Context, ct domain.ClientType) {
	c.Set(ClientTypeKey, ct)
}

// GetClientType returns the validated client type, if the client-type interceptor ran.
func GetClientType(c *gin.Context) (domain.ClientType, bool) {
	val, exists := c.Get(ClientTypeKey)
	if !exists {
		return "", false
	}
	ct, ok := val.(domain.ClientType)
	return ct, ok
}

// GetRequestID returns the request id assigned by the logging middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
