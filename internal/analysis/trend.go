package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// InsufficientDataError reports a trend fit attempted with fewer than two
// distinct years of data.
type InsufficientDataError struct {
	Points int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("trend fit needs at least 2 distinct years, got %d", e.Points)
}

// Trend is a fitted least-squares line, count = Intercept + Slope*year.
type Trend struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// FitTrend fits an ordinary least squares line over yearly totals from
// fromYear onward. Earlier years are dropped before fitting, which also
// discards the year-0 bucket that rows with unparseable dates fall into.
// Fails with an *InsufficientDataError when fewer than two distinct years
// remain; a line through fewer points is undefined.
func FitTrend(years []YearCount, fromYear int) (Trend, error) {
	var xs, ys []float64
	distinct := make(map[int]bool)
	for _, yc := range years {
		if yc.Year < fromYear {
			continue
		}
		distinct[yc.Year] = true
		xs = append(xs, float64(yc.Year))
		ys = append(ys, float64(yc.Count))
	}
	if len(distinct) < 2 {
		return Trend{}, &InsufficientDataError{Points: len(distinct)}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Trend{Intercept: alpha, Slope: beta}, nil
}

// Predict evaluates the fitted line at the given year.
func (t Trend) Predict(year int) float64 {
	return t.Intercept + t.Slope*float64(year)
}
