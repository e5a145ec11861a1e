// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/jobs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	usageReportJob *jobs.UsageReportJob
}

// NewServer creates a new instance of our application server.
func NewServer(cfg *config.Config, logger *zap.Logger, router *gin.Engine, usageReportJob *jobs.UsageReportJob) *Server {
	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		usageReportJob: usageReportJob,
	}
}

// Router exposes the engine for in-process tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	if s.usageReportJob != nil {
		if err := s.usageReportJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start usage report job", zap.Error(err))
		}
	} else {
		s.logger.Info("Usage report job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.usageReportJob != nil {
		s.usageReportJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
