package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sydneypulse/schi-pipeline/internal/adapter/csvfile"
	"github.com/sydneypulse/schi-pipeline/internal/adapter/httpapi"
	"github.com/sydneypulse/schi-pipeline/internal/config"
	"github.com/sydneypulse/schi-pipeline/internal/domain"
	"github.com/sydneypulse/schi-pipeline/internal/observability"
	"github.com/sydneypulse/schi-pipeline/internal/pipeline"
	"github.com/sydneypulse/schi-pipeline/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store := csvfile.NewStore(cfg.InputDir, cfg.OutputDir)
	p := pipeline.New(store, store, domain.Weights(cfg.Weights), cfg.SevereDelayMin, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Interval 0 is the batch mode: one run, exit code reports the outcome.
	if cfg.RefreshInterval <= 0 {
		report, err := p.Run(ctx)
		if err != nil {
			stop()
			os.Exit(1)
		}
		logger.Info("artifact written",
			"path", store.IndexPath(),
			"index_rows", report.IndexRows,
			"quick_schi", report.QuickSCHI,
		)
		return
	}

	// Interval > 0 turns the CLI into a service: sidecar plus scheduled reruns.
	srv := httpapi.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	sched := scheduler.New(p, cfg.RefreshInterval, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		stop()
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
