// File: internal/auth/handler.go
package auth

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"
	"github.com/LIMSONGJIN/metabank-api/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	userService  user.Service
	tokenService shared.TokenService
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(userService user.Service, tokenService shared.TokenService, logger *zap.Logger) *Handler {
	return &Handler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
// requireAuth guards /auth/me.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/me", requireAuth, h.me)
	}
}

func (h *Handler) register(c *gin.Context) {
	var req user.RegisterRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Debug("Register: invalid request body", zap.Error(err))
		_ = c.Error(err)
		return
	}

	u, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondWithToken(c, u)
}

func (h *Handler) login(c *gin.Context) {
	var req user.LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Debug("Login: invalid request body", zap.Error(err))
		_ = c.Error(err)
		return
	}

	u, err := h.userService.Authenticate(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respondWithToken(c, u)
}

func (h *Handler) me(c *gin.Context) {
	uid := common.GetUserID(c)
	if uid == nil {
		_ = c.Error(common.ErrUnauthorized.WithMessage("Authentication required"))
		return
	}
	u, err := h.userService.GetByID(c.Request.Context(), *uid)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, user.ToProfile(u))
}

func (h *Handler) respondWithToken(c *gin.Context, u *user.User) {
	claims := shared.Claims{UserID: u.ID, Role: string(u.Role)}
	if u.Email != nil {
		claims.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		claims.PhoneNumber = *u.PhoneNumber
	}

	token, _, err := h.tokenService.IssueToken(claims)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, shared.AuthResponse{User: user.ToPublic(u), Token: token})
}
