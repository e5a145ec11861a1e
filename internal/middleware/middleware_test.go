package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTokens struct {
	tokens map[string]*shared.Claims
}

func (s *stubTokens) IssueToken(claims shared.Claims) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s *stubTokens) ValidateToken(token string) (*shared.Claims, error) {
	if c, ok := s.tokens[token]; ok {
		return c, nil
	}
	return nil, shared.ErrInvalidToken
}

var (
	userID  = uuid.New()
	adminID = uuid.New()
	tokens  = &stubTokens{tokens: map[string]*shared.Claims{
		"user-token":  {UserID: userID, Email: "u@example.com", Role: string(domain.RoleUser)},
		"admin-token": {UserID: adminID, Email: "a@example.com", Role: string(domain.RoleAdmin)},
	}}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func echoIdentity(c *gin.Context) {
	id, ok := common.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": id.UserID.String(), "role": id.Role})
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, zap.NewNop()), echoIdentity)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"Unauthorized","message":"Missing or invalid authorization header"}`},
		{"wrong scheme", "Basic user-token", http.StatusUnauthorized, `{"error":"Unauthorized","message":"Missing or invalid authorization header"}`},
		{"bad token", "Bearer nope", http.StatusUnauthorized, `{"error":"Unauthorized","message":"Invalid or expired token"}`},
		{"valid token", "Bearer user-token", http.StatusOK, `{"userId":"` + userID.String() + `","role":"USER"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers[common.AuthorizationHeader] = tt.header
			}
			w := perform(r, http.MethodGet, "/me", headers)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestOptionalAuthMiddleware_NeverRejects(t *testing.T) {
	r := gin.New()
	r.GET("/x", OptionalAuthMiddleware(tokens, zap.NewNop()), echoIdentity)

	w := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	w = perform(r, http.MethodGet, "/x", map[string]string{common.AuthorizationHeader: "Bearer garbage"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	w = perform(r, http.MethodGet, "/x", map[string]string{common.AuthorizationHeader: "Bearer user-token"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"`+userID.String()+`","role":"USER"}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(tokens, zap.NewNop()), AdminMiddleware(), echoIdentity)
	r.GET("/bare", AdminMiddleware(), echoIdentity)

	w := perform(r, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/admin", map[string]string{common.AuthorizationHeader: "Bearer user-token"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden","message":"Admin access required"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/admin", map[string]string{common.AuthorizationHeader: "Bearer admin-token"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/bare", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","message":"Authentication required"}`, w.Body.String())
}

func TestClientTypeMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/f", ClientTypeMiddleware(), func(c *gin.Context) {
		ct, _ := common.GetClientType(c)
		c.String(http.StatusOK, string(ct))
	})

	w := perform(r, http.MethodGet, "/f", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Bad Request","message":"Missing x-client-type header"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/f", map[string]string{common.ClientTypeHeader: "kiosk"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Bad Request","message":"Invalid client type. Must be one of: KIOSK, BOGOFIT_APP, SHOPPING_MALL_WEB, BEAUTY_FIT"}`, w.Body.String())

	for _, ct := range domain.ClientTypes() {
		w = perform(r, http.MethodGet, "/f", map[string]string{common.ClientTypeHeader: string(ct)})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(ct), w.Body.String())
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(ErrorHandler(zap.NewNop()), Recovery(zap.NewNop()))
	r.NoRoute(NoRoute())
	r.NoMethod(NoMethod())
	r.GET("/api-error", func(c *gin.Context) {
		_ = c.Error(common.ErrNotFound.WithMessage("User not found"))
	})
	r.GET("/plain-error", func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp: refused"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := perform(r, http.MethodGet, "/api-error", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found","message":"User not found"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/plain-error", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")

	w = perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error","message":"An unexpected error occurred on the server."}`, w.Body.String())

	w = perform(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Not Found"`)

	w = perform(r, http.MethodPost, "/api-error", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestZapLogger_AssignsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(ZapLogger(zap.NewNop(), &config.Config{GinMode: gin.TestMode}))
	r.GET("/id", func(c *gin.Context) {
		_, hasLogger := c.Get(common.LoggerKey)
		assert.True(t, hasLogger)
		c.String(http.StatusOK, common.GetRequestID(c))
	})

	w := perform(r, http.MethodGet, "/id", nil)
	require.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get(common.RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	w = perform(r, http.MethodGet, "/id", map[string]string{common.RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(common.RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, zap.NewNop())
	r := gin.New()
	r.GET("/r", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/r", nil).Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/r", nil).Code)
	w := perform(r, http.MethodGet, "/r", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too Many Requests","message":"Rate limit exceeded, retry later."}`, w.Body.String())
}

func TestRateLimiter_DisabledAndPrune(t *testing.T) {
	disabled := NewRateLimiter(0, 1, zap.NewNop())
	assert.False(t, disabled.Enabled())
	r := gin.New()
	r.GET("/r", disabled.Handler(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/r", nil).Code)
	}

	rl := NewRateLimiter(10, 10, zap.NewNop())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.allow("1.1.1.1")
	now = now.Add(time.Hour)
	rl.allow("2.2.2.2")

	assert.Equal(t, 1, rl.Prune(30*time.Minute))
	assert.Len(t, rl.visitors, 1)
	_, kept := rl.visitors["2.2.2.2"]
	assert.True(t, kept)
}
