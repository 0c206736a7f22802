package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tiannaparris/nypd-shooting-report/internal/analysis"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var (
	murderColor   = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	incidentColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// BoroughChart builds a stacked bar chart of incidents per borough, murders
// at the base of each bar.
func BoroughChart(counts []analysis.BoroughCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Shooting Incidents by Borough"
	p.Y.Label.Text = "Incidents"

	murders := make(plotter.Values, len(counts))
	other := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, bc := range counts {
		murders[i] = float64(bc.Murders)
		other[i] = float64(bc.Total - bc.Murders)
		labels[i] = bc.Borough
	}

	barWidth := vg.Points(30)
	murderBars, err := plotter.NewBarChart(murders, barWidth)
	if err != nil {
		return nil, fmt.Errorf("murder bars: %w", err)
	}
	murderBars.Color = murderColor
	murderBars.LineStyle.Width = vg.Length(0)

	otherBars, err := plotter.NewBarChart(other, barWidth)
	if err != nil {
		return nil, fmt.Errorf("incident bars: %w", err)
	}
	otherBars.Color = incidentColor
	otherBars.LineStyle.Width = vg.Length(0)
	otherBars.StackOn(murderBars)

	p.Add(murderBars, otherBars)
	p.Legend.Add("murder", murderBars)
	p.Legend.Add("non-fatal", otherBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	return p, nil
}

// YearChart builds a bar chart of incidents per year. The year-0 bucket of
// unparseable dates is labeled "n/a".
func YearChart(counts []analysis.YearCount) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Shooting Incidents by Year"
	p.Y.Label.Text = "Incidents"

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, yc := range counts {
		values[i] = float64(yc.Count)
		labels[i] = strconv.Itoa(yc.Year)
		if yc.Year == 0 {
			labels[i] = "n/a"
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("year bars: %w", err)
	}
	bars.Color = incidentColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XCenter

	return p, nil
}

// RenderSVG renders a plot as SVG, the format served by the HTTP API.
func RenderSVG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(chartWidth, chartHeight, "svg")
	if err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}

// SavePNG writes a plot to a .png file.
func SavePNG(p *plot.Plot, path string) error {
	return p.Save(chartWidth, chartHeight, path)
}
