package main

import (
	"context"
	"errors"
	"os"

	"github.com/openchord/rotx/internal/repositories"
	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/shared"
	"github.com/openchord/rotx/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	var scheduleService services.Service
	if config.Credentials.PlanningCenter.AppID != "" && config.Credentials.PlanningCenter.Secret != "" {
		if svc, err := services.NewPlanningCenterService(map[string]string{
			"app_id":   config.Credentials.PlanningCenter.AppID,
			"secret":   config.Credentials.PlanningCenter.Secret,
			"base_url": config.Credentials.PlanningCenter.BaseURL,
		}, nil); err == nil {
			scheduleService = svc
		}
	}

	var cache tasks.ScheduleCache
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			cache = repositories.NewScheduleCacheRepository(db)
			defer db.Close()
		} else {
			logger.Warn("session cache unavailable", "error", err)
			db.Close()
		}
	} else {
		logger.Warn("session cache unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    scheduleService,
		Cache:      cache,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "rotx",
		Usage:    "Plan song rotations from Planning Center Services",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
