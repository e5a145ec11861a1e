// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"github.com/LIMSONGJIN/metabank-api/internal/app"
	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/database"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	dryRun := migrateCmd.Bool("dry-run", false, "Connect and list the tables without migrating")

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		_ = migrateCmd.Parse(os.Args[2:])
		runMigrate(*dryRun)
		return
	}

	startServer()
}

func runMigrate(dryRun bool) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for migrate: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for migrate: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize database for migrate", zap.Error(err))
	}
	defer database.CloseGORMDB(db, appLogger)

	if dryRun {
		for _, m := range app.Models() {
			stmt := db.Model(m).Statement
			if err := stmt.Parse(m); err != nil {
				appLogger.Fatal("Failed to parse model", zap.Error(err))
			}
			appLogger.Info("Would migrate table", zap.String("table", stmt.Schema.Table))
		}
		return
	}

	if err := app.Migrate(db); err != nil {
		appLogger.Fatal("Schema migration failed", zap.Error(err))
	}
	appLogger.Info("Schema migration completed successfully.")
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
