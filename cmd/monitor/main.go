package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/pwnwatch/internal/app"
	"github.com/samvad-hq/pwnwatch/internal/config"
	"github.com/samvad-hq/pwnwatch/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "monitor start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("monitor starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := app.Build(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize monitor", "error", err.Error())
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.ErrorObj("monitor shutdown failed", "error", err.Error())
		}
	}()

	go func() {
		if err := app.ServeMetrics(ctx, cfg.MetricsAddr, log); err != nil {
			logger.ErrorObj("metrics endpoint failed", "error", err.Error())
		}
	}()

	if err := rt.Monitor(ctx); err != nil {
		return fmt.Errorf("monitor run: %w", err)
	}
	return nil
}
