package main

import (
	"github.com/LIMSONGJIN/metabank-api/internal/app"
	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/middleware"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideDatabase opens the store, migrates it when configured, and returns
// a cleanup that closes it and flushes the logger.
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := app.Migrate(db); err != nil {
			database.CloseGORMDB(db, logger)
			return nil, nil, err
		}
		logger.Info("Database schema migrated.")
	}

	cleanup := func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db, logger)
		_ = logger.Sync()
	}
	return db, cleanup, nil
}

func provideRateLimiter(cfg *config.Config, logger *zap.Logger) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger.Named("ratelimit"))
}
