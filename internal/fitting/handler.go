package fitting

import (
	"net/http"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Surface describes one client-facing route group.
type Surface struct {
	Path       string
	Name       string
	ClientType domain.ClientType
	Features   []domain.FeatureType
	// Lookup mounts GET /results/:id on the surface.
	Lookup bool
}

// Surfaces is the route table of every client surface.
var Surfaces = []Surface{
	{
		Path:       "/kiosk",
		Name:       "kiosk",
		ClientType: domain.ClientKiosk,
		Features:   []domain.FeatureType{domain.FeatureVirtualFitting, domain.FeatureMakeup, domain.FeatureHairFitting},
	},
	{
		Path:       "/bogofit",
		Name:       "bogofit-app",
		ClientType: domain.ClientBogofitApp,
		Features:   []domain.FeatureType{domain.FeatureVirtualFitting, domain.FeatureVideoGeneration},
	},
	{
		Path:       "/shopping-mall",
		Name:       "shopping-mall-web",
		ClientType: domain.ClientShoppingMall,
		Features:   []domain.FeatureType{domain.FeatureVirtualFitting, domain.FeatureMakeup, domain.FeatureHairFitting, domain.FeatureVideoGeneration},
		Lookup:     true,
	},
	{
		Path:       "/beautyfit",
		Name:       "beauty-fit",
		ClientType: domain.ClientBeautyFit,
		Features:   []domain.FeatureType{domain.FeatureMakeup, domain.FeatureHairFitting},
		Lookup:     true,
	},
}

var featurePaths = map[domain.FeatureType]string{
	domain.FeatureVirtualFitting:  "/virtual-fitting",
	domain.FeatureMakeup:          "/makeup",
	domain.FeatureHairFitting:     "/hair-fitting",
	domain.FeatureVideoGeneration: "/video-generation",
}

// Handler serves the feature endpoints of the client surfaces.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterSurface mounts the surface's health check and its feature routes.
// chain runs before every feature handler; health stays unguarded.
func (h *Handler) RegisterSurface(group *gin.RouterGroup, surface Surface, chain ...gin.HandlerFunc) {
	group.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "client": surface.Name})
	})

	for _, feature := range surface.Features {
		handlers := append(append([]gin.HandlerFunc{}, chain...), h.handlerFor(feature, surface.ClientType))
		group.POST(featurePaths[feature], handlers...)
	}
}

func (h *Handler) handlerFor(feature domain.FeatureType, ct domain.ClientType) gin.HandlerFunc {
	switch feature {
	case domain.FeatureVirtualFitting:
		return h.virtualFitting(ct)
	case domain.FeatureMakeup:
		return h.makeup(ct)
	case domain.FeatureHairFitting:
		return h.hairFitting(ct)
	default:
		return h.generateVideo(ct)
	}
}

// invocation stamps the surface's client type, not the header value.
func invocation(c *gin.Context, ct domain.ClientType, sessionID *string) Invocation {
	return Invocation{
		UserID:     common.GetUserID(c),
		ClientType: ct,
		SessionID:  sessionID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
}

func (h *Handler) virtualFitting(ct domain.ClientType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VirtualFittingRequest
		if err := common.BindJSON(c, &req); err != nil {
			_ = c.Error(err)
			return
		}
		resp, err := h.service.VirtualFitting(c.Request.Context(), invocation(c, ct, req.SessionID), req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondOK(c, resp)
	}
}

func (h *Handler) makeup(ct domain.ClientType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MakeupRequest
		if err := common.BindJSON(c, &req); err != nil {
			_ = c.Error(err)
			return
		}
		resp, err := h.service.Makeup(c.Request.Context(), invocation(c, ct, req.SessionID), req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondOK(c, resp)
	}
}

func (h *Handler) hairFitting(ct domain.ClientType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HairFittingRequest
		if err := common.BindJSON(c, &req); err != nil {
			_ = c.Error(err)
			return
		}
		resp, err := h.service.HairFitting(c.Request.Context(), invocation(c, ct, req.SessionID), req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondOK(c, resp)
	}
}

func (h *Handler) generateVideo(ct domain.ClientType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VideoGenerationRequest
		if err := common.BindJSON(c, &req); err != nil {
			_ = c.Error(err)
			return
		}
		resp, err := h.service.GenerateVideo(c.Request.Context(), invocation(c, ct, req.SessionID), req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondOK(c, resp)
	}
}
