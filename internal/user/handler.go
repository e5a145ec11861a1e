// File: internal/user/handler.go
package user

import (
	"context"
	"fmt"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recentLogLimit is how many usage logs the admin user detail embeds.
const recentLogLimit = 20

// UsageReader is the slice of the usage-log service the user detail needs.
type UsageReader interface {
	GetLogsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]usagelog.UsageLog, error)
}

// UserDetailResponse is returned by GET /admin/users/:id.
type UserDetailResponse struct {
	ProfileResponse
	UsageLogs []usagelog.UsageLog `json:"usageLogs"`
}

// Handler struct holds dependencies for the admin user handlers.
type Handler struct {
	service Service
	usage   UsageReader
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, usage UsageReader, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		usage:   usage,
		logger:  logger,
	}
}

// RegisterAdminRoutes mounts the user administration routes on an
// admin-protected group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.list)
		users.GET("/:id", h.get)
		users.PATCH("/:id/role", h.updateRole)
	}
}

func userNotFound() error {
	return common.ErrNotFound.WithMessage("User not found")
}

func (h *Handler) list(c *gin.Context) {
	page, limit := common.GetPaginationParams(c)
	users, pagination, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	rows := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		rows = append(rows, ToAdminResponse(&users[i]))
	}
	common.RespondOK(c, gin.H{"users": rows, "pagination": pagination})
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(userNotFound())
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logs, err := h.usage.GetLogsByUser(c.Request.Context(), id, recentLogLimit)
	if err != nil {
		h.logger.Error("Failed to load usage logs for user", zap.String("userID", id.String()), zap.Error(err))
		_ = c.Error(err)
		return
	}
	if logs == nil {
		logs = []usagelog.UsageLog{}
	}

	common.RespondOK(c, UserDetailResponse{ProfileResponse: ToProfile(u), UsageLogs: logs})
}

func (h *Handler) updateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(userNotFound())
		return
	}

	var req UpdateRoleRequest
	if err := common.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	role, err := req.parse()
	if err != nil {
		_ = c.Error(err)
		return
	}

	u, err := h.service.UpdateRole(c.Request.Context(), id, role)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, RoleResponse{ID: u.ID, Email: u.Email, Role: u.Role})
}

// parse re-checks the role after binding so an unknown value never reaches the store.
func (r UpdateRoleRequest) parse() (domain.Role, error) {
	role, ok := domain.ParseRole(r.Role)
	if !ok {
		return "", common.NewValidationAPIError(map[string]string{
			"role": fmt.Sprintf("The role field must be one of the following values: %s %s.", domain.RoleUser, domain.RoleAdmin),
		})
	}
	return role, nil
}
