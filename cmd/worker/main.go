package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"langid/packages/config"
	"langid/packages/crawler"
	"langid/packages/db"
	"langid/packages/detector"
	"langid/packages/engine"
	"langid/packages/logging"
	"langid/packages/metrics"
	"langid/packages/publish"
	"langid/packages/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("FATAL: Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup("langid-worker", cfg.LogFile, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("--- Starting langid worker ---", "engine", cfg.Engine)

	go metrics.ExposeMetrics(cfg.MetricsAddr)

	eng, err := engine.New(cfg.Engine, logger)
	if err != nil {
		slog.Error("Failed to initialize engine", "error", err)
		os.Exit(1)
	}
	det := detector.New(eng,
		detector.WithLogger(logger),
		detector.WithMaxConcurrent(cfg.MaxConcurrentDetections),
	)

	storage, err := db.New(ctx, cfg.DatabaseURL, db.Config{
		JobTimeout:          cfg.JobTimeout,
		ResultWriteInterval: cfg.ResultWriteInterval,
		ResultQueueSize:     cfg.ResultQueueSize,
	})
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer storage.Close()
	if err := storage.Migrate(ctx); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	writerDone := storage.StartWriter(ctx)

	publisher := publish.New(publish.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Stream:   cfg.ResultStream,
		MaxLen:   cfg.ResultStreamMaxLen,
	})
	if err := publisher.Ping(ctx); err != nil {
		slog.Warn("Result stream unavailable, publishing will be retried per result", "error", err)
	}
	defer publisher.Close()

	appWorker := worker.New(cfg, storage, crawler.New(cfg.FetchTimeout, cfg.FetchRate), det, publisher)

	ticker := time.NewTicker(cfg.SleepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutdown signal received. Waiting for result writer...")
			<-writerDone
			slog.Info("Result writer finished. Exiting...")
			return
		case <-ticker.C:
			slog.Debug("Worker cycle starting")
			appWorker.ProcessJobs(ctx)
		}
	}
}
