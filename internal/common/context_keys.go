// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// ClientTypeHeader carries the calling client surface
	ClientTypeHeader = "x-client-type"
	// RequestIDHeader is echoed back on every response
	RequestIDHeader = "X-Request-ID"

	// IdentityKey is the context key for the authenticated domain.Identity
	IdentityKey = "identity"
	// ClientTypeKey is the context key for the resolved domain.ClientType
	ClientTypeKey = "clientType"
	// RequestIDKey is the context key for the request id
	RequestIDKey = "requestID"
	// LoggerKey is the context key for the request-scoped *zap.Logger
	LoggerKey = "logger"
)
