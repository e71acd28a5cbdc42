package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hidro-hq/ana-telemetry/internal/app"
	"github.com/hidro-hq/ana-telemetry/internal/config"
	"github.com/hidro-hq/ana-telemetry/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "collector start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("collector starting", "config", map[string]any{
		"ana_base_url":    cfg.ANABaseURL,
		"watchlist_file":  cfg.WatchlistFile,
		"publishers_file": cfg.PublishersFile,
		"poll_interval":   cfg.PollInterval.String(),
		"storage_type":    cfg.StorageType,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector, err := app.NewCollector(ctx, cfg, logger.Adapter{}, app.Deps{})
	if err != nil {
		logger.ErrorObj("failed to initialize collector", "error", err.Error())
		return err
	}

	if err := collector.Run(ctx); err != nil {
		return fmt.Errorf("collector run: %w", err)
	}

	return nil
}
