// Command reportd serves the shooting report over HTTP, refreshing it from
// the NYC Open Data portal on a fixed interval.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/tiannaparris/nypd-shooting-report/internal/adapter/http"
	"github.com/tiannaparris/nypd-shooting-report/internal/adapter/opendata"
	"github.com/tiannaparris/nypd-shooting-report/internal/config"
	"github.com/tiannaparris/nypd-shooting-report/internal/observability"
	"github.com/tiannaparris/nypd-shooting-report/internal/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := opendata.NewClient(cfg.DataURL, cfg.FetchTimeout, logger)

	p := pipeline.New(loader, logger, metrics, pipeline.Options{
		SourceURL:       cfg.DataURL,
		RefreshInterval: cfg.RefreshInterval,
		TrendFromYear:   cfg.TrendFromYear,
		TrendTargetYear: cfg.TrendTargetYear,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh loop.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
