// Command report runs the pipeline once: it downloads the shooting CSV,
// writes report.json and chart PNGs to OUTPUT_DIR, and prints the text
// report to stdout. Logs go to stderr, so stdout stays pipeable.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"gonum.org/v1/plot"

	"github.com/tiannaparris/nypd-shooting-report/internal/adapter/opendata"
	"github.com/tiannaparris/nypd-shooting-report/internal/config"
	"github.com/tiannaparris/nypd-shooting-report/internal/observability"
	"github.com/tiannaparris/nypd-shooting-report/internal/pipeline"
	"github.com/tiannaparris/nypd-shooting-report/internal/report"
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

	if err := run(cfg, logger); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()
	loader := opendata.NewClient(cfg.DataURL, cfg.FetchTimeout, logger)

	p := pipeline.New(loader, logger, metrics, pipeline.Options{
		SourceURL:       cfg.DataURL,
		TrendFromYear:   cfg.TrendFromYear,
		TrendTargetYear: cfg.TrendTargetYear,
	})

	rep, err := p.RunOnce(ctx)
	if err != nil {
		return err
	}

	if err := writeArtifacts(cfg.OutputDir, rep, logger); err != nil {
		return err
	}

	report.RenderText(os.Stdout, rep)
	return nil
}

func writeArtifacts(dir string, rep report.Report, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	jsonPath := filepath.Join(dir, "report.json")
	if err := writeReportJSON(jsonPath, rep); err != nil {
		return err
	}
	logger.Info("report written", "path", jsonPath)

	charts := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{"incidents_by_borough.png", func() (*plot.Plot, error) { return report.BoroughChart(rep.Boroughs) }},
		{"incidents_by_year.png", func() (*plot.Plot, error) { return report.YearChart(rep.Years) }},
	}

	for _, c := range charts {
		plt, err := c.build()
		if err != nil {
			return fmt.Errorf("build %s: %w", c.file, err)
		}
		path := filepath.Join(dir, c.file)
		if err := report.SavePNG(plt, path); err != nil {
			return err
		}
		logger.Info("chart written", "path", path)
	}

	return nil
}

func writeReportJSON(path string, rep report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
