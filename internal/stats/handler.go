package stats

import (
	"net/http"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateOnlyLayout = "2006-01-02"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdminRoutes mounts /health and /stats on an admin-protected group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/health", h.health)
	admin.GET("/stats", h.overview)
	admin.GET("/stats/range", h.rangeLogs)
}

func (h *Handler) health(c *gin.Context) {
	resp := gin.H{"status": "ok", "message": "Admin API is working"}
	if id, ok := common.GetIdentity(c); ok {
		resp["admin"] = id.Email
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) overview(c *gin.Context) {
	ov, err := h.service.Overview(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, ov)
}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC midnight).
// An empty string means no bound.
func ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnlyLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, common.ErrBadRequest.WithMessage("Invalid date: " + raw)
}

func (h *Handler) rangeLogs(c *gin.Context) {
	start, err := ParseDate(c.Query("startDate"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	end, err := ParseDate(c.Query("endDate"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	logs, err := h.service.Range(c.Request.Context(), start, end)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"logs": logs})
}
