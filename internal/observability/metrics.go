package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline.
type Metrics struct {
	RunsTotal   *prometheus.CounterVec // label: outcome={success,error}
	RowsFetched prometheus.Counter
	RowsCleaned prometheus.Counter

	// Unknown-collapse counts by field, e.g. field="perp_age_group".
	UnknownValues *prometheus.CounterVec

	FetchDuration prometheus.Histogram
	RunDuration   prometheus.Histogram

	ReportIncidents prometheus.Gauge
	LastSuccess     prometheus.Gauge
	PipelineRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shooting_report",
			Name:      "runs_total",
			Help:      "Report pipeline runs by outcome.",
		}, []string{"outcome"}),
		RowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shooting_report",
			Name:      "rows_fetched_total",
			Help:      "Total raw CSV rows downloaded across runs.",
		}),
		RowsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shooting_report",
			Name:      "rows_cleaned_total",
			Help:      "Total rows normalized across runs.",
		}),
		UnknownValues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shooting_report",
			Name:      "unknown_values_total",
			Help:      "Cells collapsed to Unknown during normalization, by field.",
		}, []string{"field"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shooting_report",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the CSV download and parse.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shooting_report",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-clean-aggregate run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		ReportIncidents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shooting_report",
			Name:      "report_incidents",
			Help:      "Incidents behind the currently served report.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shooting_report",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful report run.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shooting_report",
			Name:      "pipeline_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.RowsFetched,
		m.RowsCleaned,
		m.UnknownValues,
		m.FetchDuration,
		m.RunDuration,
		m.ReportIncidents,
		m.LastSuccess,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RunsTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "shooting_report", Name: "runs_total"}, []string{"outcome"}),
		RowsFetched:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "shooting_report", Name: "rows_fetched_total"}),
		RowsCleaned:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "shooting_report", Name: "rows_cleaned_total"}),
		UnknownValues:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "shooting_report", Name: "unknown_values_total"}, []string{"field"}),
		FetchDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "shooting_report", Name: "fetch_duration_seconds"}),
		RunDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "shooting_report", Name: "run_duration_seconds"}),
		ReportIncidents: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "shooting_report", Name: "report_incidents"}),
		LastSuccess:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "shooting_report", Name: "last_success_timestamp_seconds"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "shooting_report", Name: "pipeline_running"}),
	}
}
