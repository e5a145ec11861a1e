package usagelog

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the admin usage-log listing.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdminRoutes mounts GET /usage-logs on an admin-protected group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/usage-logs", h.list)
}

func (h *Handler) list(c *gin.Context) {
	page, limit := common.GetPaginationParams(c)

	var filter Filter
	if raw := c.Query("clientType"); raw != "" {
		ct, ok := domain.ParseClientType(raw)
		if !ok {
			_ = c.Error(common.ErrValidation.WithMessage("Invalid clientType. Must be one of: " + domain.ClientTypeList()))
			return
		}
		filter.ClientType = ct
	}
	if raw := c.Query("featureType"); raw != "" {
		ft, ok := domain.ParseFeatureType(raw)
		if !ok {
			_ = c.Error(common.ErrValidation.WithMessage("Invalid featureType"))
			return
		}
		filter.FeatureType = ft
	}

	logs, pagination, err := h.service.ListLogs(c.Request.Context(), filter, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"logs": logs, "pagination": pagination})
}
