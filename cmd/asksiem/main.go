package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/NikhilShimpy/AskSIEM/internal/alert"
	"github.com/NikhilShimpy/AskSIEM/internal/api"
	"github.com/NikhilShimpy/AskSIEM/internal/config"
	"github.com/NikhilShimpy/AskSIEM/internal/engine"
	"github.com/NikhilShimpy/AskSIEM/internal/history"
	"github.com/NikhilShimpy/AskSIEM/internal/metrics"
	"github.com/NikhilShimpy/AskSIEM/internal/model"
	"github.com/NikhilShimpy/AskSIEM/internal/store"
	"github.com/NikhilShimpy/AskSIEM/internal/synth"
)

func main() {
	cfg, err := config.Load(os.Getenv("ASKSIEM_CONFIG_FILE"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("Starting AskSIEM",
		"http_addr", cfg.HTTPAddr,
		"dataset_path", cfg.DatasetPath,
		"dataset_size", cfg.DatasetSize,
		"history_sessions", cfg.HistorySessions)

	// Dataset: load from disk when a path is configured, otherwise generate
	// a seeded synthetic dataset.
	var events []model.SecurityEvent
	if cfg.DatasetPath != "" {
		events, err = store.LoadDataset(cfg.DatasetPath, logger)
		if err != nil {
			logger.Error("Failed to load dataset", "error", err)
			os.Exit(1)
		}
	} else {
		gen := synth.NewGenerator(cfg.DatasetSeed, time.Now().UTC())
		events = gen.Generate(cfg.DatasetSize)
		logger.Info("Synthetic dataset generated", "events", len(events), "seed", cfg.DatasetSeed)
	}

	memoryStore := store.NewMemoryStore(events)

	prometheusMetrics := metrics.NewMetrics()
	prometheusMetrics.DatasetEvents.Set(float64(len(events)))

	historyLog, err := history.NewLog(cfg.HistorySessions)
	if err != nil {
		logger.Error("Failed to create history log", "error", err)
		os.Exit(1)
	}

	// NATS is optional: without a URL the alert publisher is a no-op.
	var publisher *alert.Publisher
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		publisher = alert.NewPublisher(nc, logger)
		logger.Info("Connected to NATS", "url", cfg.NATSURL)
	}

	eng := engine.NewEngine(memoryStore, prometheusMetrics, logger)
	server := api.NewServer(eng, memoryStore, historyLog, publisher, prometheusMetrics, logger)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("AskSIEM started successfully")
	<-sigChan

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("AskSIEM stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
