// Command maintenance запускает разовые служебные задачи:
//
//	maintenance assign-managers [-dry-run] [-json]
//	maintenance normalize-bios [-dry-run] [-json]
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"freelance_backend/internal/config"
	"freelance_backend/internal/database"
	"freelance_backend/internal/logger"
	"freelance_backend/internal/maintenance"
	"freelance_backend/internal/services"
)

func main() {
	cfg, err := maintenance.ParseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		logger.Fatal("Invalid arguments", "error", err)
	}

	appCfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(appCfg.Server.Env, appCfg.Server.LogLevel)

	db, err := database.Open(appCfg.Database.Driver, appCfg.Database.DSN, false)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)

	runErr := maintenance.NewDefaultRunner().Run(ctx, db, cfg, os.Stdout)
	cancel()
	stop()
	database.Close(db)

	if runErr != nil {
		if errors.Is(runErr, services.ErrNoActiveManagers) {
			logger.Fatal("Backfill aborted: no active project managers", "command", cfg.Command)
		}
		logger.Fatal("Maintenance command failed", "command", cfg.Command, "error", runErr)
	}
	logger.Info("Maintenance command finished", "command", cfg.Command, "dry_run", cfg.DryRun)
}
