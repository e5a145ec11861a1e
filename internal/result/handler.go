// File: internal/result/handler.go
package result

import (
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves admin result management and the public result lookup.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdminRoutes mounts /results/* on an admin-protected group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	results := admin.Group("/results")
	{
		results.GET("/virtual-fitting", h.listVirtualFittings)
		results.GET("/makeup", h.listMakeups)
		results.GET("/hair-fitting", h.listHairFittings)
		results.GET("/videos", h.listVideos)
		results.DELETE("/:type/:id", h.delete)
	}
}

// RegisterLookupRoute mounts GET /results/:id on a client surface group.
func (h *Handler) RegisterLookupRoute(group *gin.RouterGroup) {
	group.GET("/results/:id", h.getAny)
}

func parseFilter(c *gin.Context) (Filter, error) {
	var f Filter
	if raw := c.Query("clientType"); raw != "" {
		ct, ok := domain.ParseClientType(raw)
		if !ok {
			return f, common.ErrValidation.WithMessage("Invalid clientType. Must be one of: " + domain.ClientTypeList())
		}
		f.ClientType = ct
	}
	if raw := c.Query("status"); raw != "" {
		st, ok := domain.ParseVideoStatus(raw)
		if !ok {
			return f, common.ErrValidation.WithMessage("Invalid status")
		}
		f.Status = st
	}
	return f, nil
}

func (h *Handler) listVirtualFittings(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, limit := common.GetPaginationParams(c)
	recs, p, err := h.service.ListVirtualFittings(c.Request.Context(), filter, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"results": recs, "pagination": p})
}

func (h *Handler) listMakeups(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, limit := common.GetPaginationParams(c)
	recs, p, err := h.service.ListMakeups(c.Request.Context(), filter, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"results": recs, "pagination": p})
}

func (h *Handler) listHairFittings(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, limit := common.GetPaginationParams(c)
	recs, p, err := h.service.ListHairFittings(c.Request.Context(), filter, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"results": recs, "pagination": p})
}

func (h *Handler) listVideos(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, limit := common.GetPaginationParams(c)
	recs, p, err := h.service.ListVideos(c.Request.Context(), filter, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"results": recs, "pagination": p})
}

func (h *Handler) delete(c *gin.Context) {
	kind, ok := domain.ParseResultKind(c.Param("type"))
	if !ok {
		_ = c.Error(common.ErrBadRequest.WithMessage("Invalid result type"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(common.ErrNotFound.WithMessage("Result not found"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), kind, id); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, gin.H{"success": true, "message": "Result deleted"})
}

func (h *Handler) getAny(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(common.ErrNotFound.WithMessage("Result not found"))
		return
	}
	found, err := h.service.FindAnyByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, found.Record)
}
