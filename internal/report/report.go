// Package report assembles the shooting incident report and renders it as
// text, JSON, and charts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tiannaparris/nypd-shooting-report/internal/analysis"
)

// TrendSummary is a fitted yearly trend evaluated at the target year.
type TrendSummary struct {
	FromYear   int     `json:"from_year"`
	TargetYear int     `json:"target_year"`
	Intercept  float64 `json:"intercept"`
	Slope      float64 `json:"slope"`
	Predicted  float64 `json:"predicted"`
}

// Report is one complete run's output: totals, groupings, and the trend.
type Report struct {
	GeneratedAt    time.Time               `json:"generated_at"`
	SourceURL      string                  `json:"source_url"`
	TotalIncidents int                     `json:"total_incidents"`
	TotalMurders   int                     `json:"total_murders"`
	Boroughs       []analysis.BoroughCount `json:"boroughs"`
	Years          []analysis.YearCount    `json:"years"`
	Trend          *TrendSummary           `json:"trend,omitempty"`
}

// New assembles a report from aggregated figures. trend is nil when too few
// years were available to fit one; the rest of the report still renders.
func New(generatedAt time.Time, sourceURL string, boroughs []analysis.BoroughCount, years []analysis.YearCount, trend *TrendSummary) Report {
	total, murders := 0, 0
	for _, bc := range boroughs {
		total += bc.Total
		murders += bc.Murders
	}

	return Report{
		GeneratedAt:    generatedAt,
		SourceURL:      sourceURL,
		TotalIncidents: total,
		TotalMurders:   murders,
		Boroughs:       boroughs,
		Years:          years,
		Trend:          trend,
	}
}

// SummarizeTrend evaluates a fitted trend at the target year.
func SummarizeTrend(t analysis.Trend, fromYear, targetYear int) *TrendSummary {
	return &TrendSummary{
		FromYear:   fromYear,
		TargetYear: targetYear,
		Intercept:  t.Intercept,
		Slope:      t.Slope,
		Predicted:  t.Predict(targetYear),
	}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderText writes the terminal-friendly rendering of the report.
func RenderText(w io.Writer, r Report) {
	rule := strings.Repeat("=", 56)
	thin := strings.Repeat("-", 56)

	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "NYPD SHOOTING INCIDENT REPORT\n")
	fmt.Fprintf(w, "generated %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "%s\n", rule)

	fmt.Fprintf(w, "\nOVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Source          : %s\n", r.SourceURL)
	fmt.Fprintf(w, "  Total incidents : %d\n", r.TotalIncidents)
	fmt.Fprintf(w, "  Murders         : %d\n", r.TotalMurders)

	fmt.Fprintf(w, "\nINCIDENTS BY BOROUGH\n%s\n", thin)
	maxTotal := 0
	for _, bc := range r.Boroughs {
		if bc.Total > maxTotal {
			maxTotal = bc.Total
		}
	}
	fmt.Fprintf(w, "  %-15s %7s %8s\n", "", "TOTAL", "MURDERS")
	for _, bc := range r.Boroughs {
		bar := ""
		if maxTotal > 0 {
			bar = strings.Repeat("#", bc.Total*30/maxTotal)
		}
		fmt.Fprintf(w, "  %-15s %7d %8d  %s\n", bc.Borough, bc.Total, bc.Murders, bar)
	}

	fmt.Fprintf(w, "\nINCIDENTS BY YEAR\n%s\n", thin)
	for _, yc := range r.Years {
		label := strconv.Itoa(yc.Year)
		if yc.Year == 0 {
			label = "n/a"
		}
		fmt.Fprintf(w, "  %-6s %7d\n", label, yc.Count)
	}

	if r.Trend != nil {
		fmt.Fprintf(w, "\nTREND (fitted from %d)\n%s\n", r.Trend.FromYear, thin)
		fmt.Fprintf(w, "  count = %.1f %+.1f * year\n", r.Trend.Intercept, r.Trend.Slope)
		fmt.Fprintf(w, "  predicted for %d : %.0f incidents\n", r.Trend.TargetYear, r.Trend.Predicted)
	}

	fmt.Fprintf(w, "\n%s\n", rule)
}
