// Command inspect summarizes a local copy of the shooting CSV without
// touching the network: row counts, borough and year breakdowns, unknown
// rates after cleaning, and an optional JSON sample of cleaned incidents.
//
// Usage:
//
//	go run ./cmd/inspect -csv shootings.csv -sample 3
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tiannaparris/nypd-shooting-report/internal/analysis"
	"github.com/tiannaparris/nypd-shooting-report/internal/dataset"
	"github.com/tiannaparris/nypd-shooting-report/internal/domain"
	"github.com/tiannaparris/nypd-shooting-report/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "path to a local copy of the shooting CSV export")
	sample := flag.Int("sample", 0, "print the first N cleaned incidents as JSON")
	trendFrom := flag.Int("trend-from", 2020, "first year included in the trend fit")
	trendTarget := flag.Int("trend-target", 2027, "year the fitted trend predicts")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := dataset.ReadCSV(f)
	if err != nil {
		return err
	}

	incidents, err := pipeline.CleanTable(table)
	if err != nil {
		return err
	}

	fmt.Println("=== Shooting CSV Inspection ===")
	fmt.Printf("File:    %s\n", *csvPath)
	fmt.Printf("Columns: %d (kept %d)\n", len(table.Columns()), len(domain.RequiredColumns()))
	fmt.Printf("Rows:    %d\n", table.Len())

	printBoroughs(incidents)
	printYears(incidents)
	printUnknowns(incidents)
	printTrend(incidents, *trendFrom, *trendTarget)

	if *sample > 0 {
		return printSample(incidents, *sample)
	}
	return nil
}

func printBoroughs(incidents []domain.Incident) {
	fmt.Println("\nBy borough:")
	for _, bc := range analysis.CountByBorough(incidents) {
		fmt.Printf("  %-15s %7d  (murders %d)\n", bc.Borough, bc.Total, bc.Murders)
	}
}

func printYears(incidents []domain.Incident) {
	fmt.Println("\nBy year:")
	for _, yc := range analysis.CountByYear(incidents) {
		label := fmt.Sprintf("%d", yc.Year)
		if yc.Year == 0 {
			label = "n/a"
		}
		fmt.Printf("  %-6s %7d\n", label, yc.Count)
	}
}

// printUnknowns reports how much of each categorical column the cleaning
// collapsed, usually the first question asked about this export.
func printUnknowns(incidents []domain.Incident) {
	if len(incidents) == 0 {
		return
	}

	counts := map[string]int{}
	for _, inc := range incidents {
		if inc.OccurYear == 0 {
			counts["occur_date"]++
		}
		if inc.Borough == domain.Unknown {
			counts["borough"]++
		}
		if inc.PerpAgeGroup == domain.Unknown {
			counts["perp_age_group"]++
		}
		if inc.PerpSex == domain.Unknown {
			counts["perp_sex"]++
		}
		if inc.PerpRace == domain.Unknown {
			counts["perp_race"]++
		}
		if inc.VicAgeGroup == domain.Unknown {
			counts["vic_age_group"]++
		}
		if inc.VicSex == domain.Unknown {
			counts["vic_sex"]++
		}
		if inc.VicRace == domain.Unknown {
			counts["vic_race"]++
		}
	}

	fmt.Println("\nUnknown after cleaning:")
	labels := []string{
		"occur_date", "borough",
		"perp_age_group", "perp_sex", "perp_race",
		"vic_age_group", "vic_sex", "vic_race",
	}
	for _, label := range labels {
		n := counts[label]
		fmt.Printf("  %-15s %7d  (%.1f%%)\n", label, n, 100*float64(n)/float64(len(incidents)))
	}
}

func printTrend(incidents []domain.Incident, fromYear, targetYear int) {
	years := analysis.CountByYear(incidents)
	trend, err := analysis.FitTrend(years, fromYear)
	if err != nil {
		fmt.Printf("\nTrend: not fitted (%v)\n", err)
		return
	}
	fmt.Printf("\nTrend from %d: count = %.1f %+.1f * year\n", fromYear, trend.Intercept, trend.Slope)
	fmt.Printf("Predicted for %d: %.0f incidents\n", targetYear, trend.Predict(targetYear))
}

func printSample(incidents []domain.Incident, n int) error {
	if n > len(incidents) {
		n = len(incidents)
	}
	data, err := json.MarshalIndent(incidents[:n], "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("\nFirst %d cleaned incident(s):\n%s\n", n, data)
	return nil
}
