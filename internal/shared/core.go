package shared

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims structure
type Claims struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for JWT operations.
type TokenService interface {
	IssueToken(claims Claims) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}
