// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/LIMSONGJIN/metabank-api/internal/app"
	"github.com/LIMSONGJIN/metabank-api/internal/auth"
	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/fitting"
	"github.com/LIMSONGJIN/metabank-api/internal/jobs"
	"github.com/LIMSONGJIN/metabank-api/internal/middleware"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/logger"
	"github.com/LIMSONGJIN/metabank-api/internal/result"
	"github.com/LIMSONGJIN/metabank-api/internal/stats"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"
	"github.com/LIMSONGJIN/metabank-api/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		provideDatabase,
		provideRateLimiter,
		auth.NewJWTService,

		// Users
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(stats.UserCounter), new(*user.ServiceImplementation)),

		// Usage logs
		usagelog.NewGORMRepository,
		usagelog.NewService,
		wire.Bind(new(usagelog.Service), new(*usagelog.ServiceImplementation)),
		wire.Bind(new(user.UsageReader), new(*usagelog.ServiceImplementation)),
		wire.Bind(new(stats.UsageReader), new(*usagelog.ServiceImplementation)),
		wire.Bind(new(fitting.UsageRecorder), new(*usagelog.ServiceImplementation)),
		wire.Bind(new(jobs.StatsReader), new(*usagelog.ServiceImplementation)),

		// Results
		result.NewGORMRepository,
		result.NewService,
		wire.Bind(new(result.Service), new(*result.ServiceImplementation)),
		wire.Bind(new(stats.ResultCounter), new(*result.ServiceImplementation)),
		wire.Bind(new(fitting.ResultWriter), new(*result.ServiceImplementation)),

		// Features and stats
		fitting.NewPlaceholderProcessor,
		wire.Bind(new(fitting.Processor), new(*fitting.PlaceholderProcessor)),
		fitting.NewService,
		wire.Bind(new(fitting.Service), new(*fitting.ServiceImplementation)),
		stats.NewService,
		wire.Bind(new(stats.Service), new(*stats.ServiceImplementation)),

		// Handlers
		auth.NewHandler,
		user.NewHandler,
		usagelog.NewHandler,
		result.NewHandler,
		stats.NewHandler,
		fitting.NewHandler,
		wire.Struct(new(app.Handlers), "*"),

		// Jobs
		wire.Bind(new(jobs.Pruner), new(*middleware.RateLimiter)),
		jobs.NewUsageReportJob,

		// Application Layer
		app.NewRouter,
		app.NewServer,
	)
	return nil, nil, nil
}
