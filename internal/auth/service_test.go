package auth

import (
	"testing"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
		JWTIssuer:    "metabank-api",
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())
	uid := uuid.New()

	token, expiresAt, err := svc.IssueToken(shared.Claims{UserID: uid, Email: "a@example.com", Role: "ADMIN"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, uid.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_Rejects(t *testing.T) {
	cfg := testConfig()
	svc := NewJWTService(cfg, zap.NewNop()).(*JWTService)
	uid := uuid.New()

	valid, _, err := svc.IssueToken(shared.Claims{UserID: uid, Role: "USER"})
	require.NoError(t, err)

	other := NewJWTService(&config.Config{JWTSecret: "other", JWTExpiresIn: time.Hour, JWTIssuer: cfg.JWTIssuer}, zap.NewNop())
	forged, _, err := other.IssueToken(shared.Claims{UserID: uid, Role: "ADMIN"})
	require.NoError(t, err)

	foreignIssuer := NewJWTService(&config.Config{JWTSecret: cfg.JWTSecret, JWTExpiresIn: time.Hour, JWTIssuer: "someone-else"}, zap.NewNop())
	wrongIssuer, _, err := foreignIssuer.IssueToken(shared.Claims{UserID: uid, Role: "USER"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &shared.Claims{
		UserID: uid,
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &shared.Claims{
		UserID:           uid,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: cfg.JWTIssuer},
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not-a-jwt",
		"wrong secret":  forged,
		"wrong issuer":  wrongIssuer,
		"alg none":      unsigned,
		"missing exp":   noExpiry,
		"tampered sig":  valid + "x",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, shared.ErrInvalidToken)
		})
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(valid)
	assert.ErrorIs(t, err, shared.ErrInvalidToken, "expired")
}
