// Package pipeline orchestrates the fetch-clean-aggregate cycle that turns
// the raw NYPD shooting export into a served report.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tiannaparris/nypd-shooting-report/internal/analysis"
	"github.com/tiannaparris/nypd-shooting-report/internal/dataset"
	"github.com/tiannaparris/nypd-shooting-report/internal/domain"
	"github.com/tiannaparris/nypd-shooting-report/internal/observability"
	"github.com/tiannaparris/nypd-shooting-report/internal/report"
)

// clock is a package-level time source so tests can freeze report timestamps.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Loader fetches a fresh copy of the source dataset.
type Loader interface {
	LoadTable(ctx context.Context) (*dataset.Table, error)
}

// Options configure how reports are built.
type Options struct {
	SourceURL       string
	RefreshInterval time.Duration
	TrendFromYear   int
	TrendTargetYear int
}

// Pipeline fetches the dataset, cleans it, and keeps the most recent report.
type Pipeline struct {
	loader  Loader
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    Options

	mu      sync.RWMutex
	current report.Report
	ready   atomic.Bool
}

// New creates a Pipeline with the given source and observability.
func New(loader Loader, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// CheckReadiness returns nil once the pipeline has produced at least one
// report, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report generated yet")
	}
	return nil
}

// Current returns the most recent report. ok is false until the first
// refresh completes.
func (p *Pipeline) Current() (rep report.Report, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.ready.Load()
}

// RunOnce builds one report from a fresh copy of the dataset and stores it
// as the current report.
func (p *Pipeline) RunOnce(ctx context.Context) (report.Report, error) {
	start := time.Now()

	table, err := p.loader.LoadTable(ctx)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report.Report{}, err
	}
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	p.metrics.RowsFetched.Add(float64(table.Len()))

	incidents, err := CleanTable(table)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report.Report{}, err
	}
	p.metrics.RowsCleaned.Add(float64(len(incidents)))
	p.countUnknowns(incidents)

	boroughs := analysis.CountByBorough(incidents)
	years := analysis.CountByYear(incidents)

	// A thin window is expected right after TREND_FROM_YEAR rolls over, so an
	// unfittable trend degrades the report instead of failing the run.
	var trend *report.TrendSummary
	fit, err := analysis.FitTrend(years, p.opts.TrendFromYear)
	switch {
	case err == nil:
		trend = report.SummarizeTrend(fit, p.opts.TrendFromYear, p.opts.TrendTargetYear)
	case errors.As(err, new(*analysis.InsufficientDataError)):
		p.logger.Warn("trend fit skipped", "error", err, "from_year", p.opts.TrendFromYear)
	default:
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report.Report{}, err
	}

	rep := report.New(clock.Now(), p.opts.SourceURL, boroughs, years, trend)

	p.mu.Lock()
	p.current = rep
	p.mu.Unlock()
	p.ready.Store(true)

	p.metrics.ReportIncidents.Set(float64(rep.TotalIncidents))
	p.metrics.LastSuccess.SetToCurrentTime()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.RunsTotal.WithLabelValues("success").Inc()

	p.logger.Info("report generated",
		"rows", table.Len(),
		"incidents", rep.TotalIncidents,
		"murders", rep.TotalMurders,
		"boroughs", len(rep.Boroughs),
		"years", len(rep.Years),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return rep, nil
}

// Run refreshes the report on a fixed interval until the context is
// cancelled. The first refresh happens immediately; a failed refresh keeps
// the previous report in place.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "refresh_interval", p.opts.RefreshInterval)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.refresh(ctx)

	ticker := clock.NewTicker(p.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.refresh(ctx)
		}
	}
}

func (p *Pipeline) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := p.RunOnce(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error("refresh failed", "error", err)
	}
}

// unknownFields maps metric labels to the cleaned fields that can carry the
// Unknown placeholder.
var unknownFields = []struct {
	label string
	value func(domain.Incident) string
}{
	{"borough", func(i domain.Incident) string { return i.Borough }},
	{"perp_age_group", func(i domain.Incident) string { return i.PerpAgeGroup }},
	{"perp_sex", func(i domain.Incident) string { return i.PerpSex }},
	{"perp_race", func(i domain.Incident) string { return i.PerpRace }},
	{"vic_age_group", func(i domain.Incident) string { return i.VicAgeGroup }},
	{"vic_sex", func(i domain.Incident) string { return i.VicSex }},
	{"vic_race", func(i domain.Incident) string { return i.VicRace }},
}

func (p *Pipeline) countUnknowns(incidents []domain.Incident) {
	for _, inc := range incidents {
		for _, f := range unknownFields {
			if f.value(inc) == domain.Unknown {
				p.metrics.UnknownValues.WithLabelValues(f.label).Inc()
			}
		}
		if inc.OccurYear == 0 {
			p.metrics.UnknownValues.WithLabelValues("occur_date").Inc()
		}
	}
}
