// Package analysis derives the report's figures from cleaned incidents:
// grouped counts by borough and year, and a least-squares trend over the
// yearly totals.
package analysis

import (
	"slices"

	"github.com/tiannaparris/nypd-shooting-report/internal/domain"
)

// BoroughCount is the number of incidents recorded in one borough, with the
// murder sub-count split out for stacked presentation.
type BoroughCount struct {
	Borough string `json:"borough"`
	Total   int    `json:"total"`
	Murders int    `json:"murders"`
}

// YearCount is the number of incidents recorded in one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CountByBorough groups incidents by borough label. The five NYC boroughs
// come first in canonical order; any other label follows in first-seen order.
// Labels with no incidents are omitted, so the totals always sum to the
// number of input rows.
func CountByBorough(incidents []domain.Incident) []BoroughCount {
	totals := make(map[string]int)
	murders := make(map[string]int)

	order := domain.Boroughs()
	known := make(map[string]bool, len(order))
	for _, b := range order {
		known[b] = true
	}

	for _, inc := range incidents {
		totals[inc.Borough]++
		if inc.IsMurder {
			murders[inc.Borough]++
		}
		if !known[inc.Borough] {
			known[inc.Borough] = true
			order = append(order, inc.Borough)
		}
	}

	out := make([]BoroughCount, 0, len(order))
	for _, b := range order {
		if totals[b] == 0 {
			continue
		}
		out = append(out, BoroughCount{Borough: b, Total: totals[b], Murders: murders[b]})
	}
	return out
}

// CountByYear groups incidents by occurrence year, ascending. Rows whose
// date failed to parse carry year 0 and group under it, so the per-year
// counts still sum to the number of input rows.
func CountByYear(incidents []domain.Incident) []YearCount {
	counts := make(map[int]int)
	for _, inc := range incidents {
		counts[inc.OccurYear]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]YearCount, len(years))
	for i, y := range years {
		out[i] = YearCount{Year: y, Count: counts[y]}
	}
	return out
}
