package app

import (
	"net/http"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/auth"
	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/fitting"
	"github.com/LIMSONGJIN/metabank-api/internal/middleware"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/metrics"
	"github.com/LIMSONGJIN/metabank-api/internal/result"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"
	"github.com/LIMSONGJIN/metabank-api/internal/stats"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"
	"github.com/LIMSONGJIN/metabank-api/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	apiName    = "Metabank API"
	apiVersion = "1.0.0"
	apiPrefix  = "/api/v1"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Handlers groups every route owner mounted by NewRouter.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	UsageLog *usagelog.Handler
	Result   *result.Handler
	Stats    *stats.Handler
	Fitting  *fitting.Handler
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", common.ClientTypeHeader, common.RequestIDHeader}
	c.ExposeHeaders = []string{"Content-Length", common.RequestIDHeader}
	c.MaxAge = 12 * time.Hour

	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowCredentials = true
	return c
}

// NewRouter builds the gin engine with the global middleware and every route.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	limiter *middleware.RateLimiter,
	h Handlers,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(metrics.Middleware())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(cors.New(corsConfig(cfg)))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(tokenService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(timestampLayout)})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    apiName,
			"version": apiVersion,
			"endpoints": gin.H{
				"auth":         apiPrefix + "/auth",
				"kiosk":        apiPrefix + "/kiosk",
				"bogofit":      apiPrefix + "/bogofit",
				"shoppingMall": apiPrefix + "/shopping-mall",
				"beautyfit":    apiPrefix + "/beautyfit",
			},
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group(apiPrefix)

	h.Auth.RegisterRoutes(v1, authMW)

	// Feature routes: optional auth, then client type, then rate limit.
	for _, surface := range fitting.Surfaces {
		group := v1.Group(surface.Path)
		h.Fitting.RegisterSurface(group, surface, optionalAuthMW, middleware.ClientTypeMiddleware(), limiter.Handler())
		if surface.Lookup {
			h.Result.RegisterLookupRoute(group)
		}
	}

	admin := v1.Group("/admin", authMW, middleware.AdminMiddleware())
	h.Stats.RegisterAdminRoutes(admin)
	h.UsageLog.RegisterAdminRoutes(admin)
	h.User.RegisterAdminRoutes(admin)
	h.Result.RegisterAdminRoutes(admin)

	return router
}
