package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"langid/packages/config"
	"langid/packages/db"
	"langid/packages/logging"
	"langid/packages/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("FATAL: Failed to load configuration for logger setup", "error", err)
		os.Exit(1)
	}
	logging.Setup("langid-reaper", cfg.LogFile, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("--- Starting langid reaper ---")

	go metrics.ExposeMetrics(cfg.MetricsAddr)

	storage, err := db.New(ctx, cfg.DatabaseURL, db.Config{JobTimeout: cfg.JobTimeout})
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	pendingTicker := time.NewTicker(10 * time.Second)
	defer pendingTicker.Stop()

	stalledJobTicker := time.NewTicker(time.Minute)
	defer stalledJobTicker.Stop()

	slog.Info("Reaper tasks scheduled",
		"pending_count_refresh", "10s",
		"stalled_job_reset", "1m",
		"job_timeout", cfg.JobTimeout.String(),
	)

	go func() {
		_ = storage.RefreshPendingJobCount(ctx)
		_ = storage.ResetStalledJobs(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutdown signal received. Exiting...")
			return
		case <-pendingTicker.C:
			if err := storage.RefreshPendingJobCount(ctx); err != nil {
				slog.Error("Failed to refresh pending job count", "error", err)
			}
		case <-stalledJobTicker.C:
			if err := storage.ResetStalledJobs(ctx); err != nil {
				slog.Error("Failed to reset stalled jobs", "error", err)
			}
		}
	}
}
