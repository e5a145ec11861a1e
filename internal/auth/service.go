// File: internal/auth/service.go
package auth

import (
	"fmt"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JWTService struct {
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) shared.TokenService {
	s := &JWTService{cfg: cfg, logger: logger.Named("jwt"), now: time.Now}
	if cfg.JWTSecretGenerated {
		s.logger.Warn("JWT_SECRET is not set; using a random secret for this process")
	}
	return s
}

// IssueToken signs claims with HS256. Registered claims are filled in here.
func (s *JWTService) IssueToken(claims shared.Claims) (string, time.Time, error) {
	now := s.now()
	expirationTime := now.Add(s.cfg.JWTExpiresIn)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.cfg.JWTIssuer,
		Subject:   claims.UserID.String(),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign access token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateToken validates a JWT token and returns its claims.
// Every failure collapses into shared.ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logger.Debug("Failed to validate token", zap.Error(err))
		return nil, shared.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}
