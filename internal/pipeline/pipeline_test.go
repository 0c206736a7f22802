package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiannaparris/nypd-shooting-report/internal/dataset"
	"github.com/tiannaparris/nypd-shooting-report/internal/domain"
	"github.com/tiannaparris/nypd-shooting-report/internal/observability"
	"github.com/tiannaparris/nypd-shooting-report/internal/pipeline"
)

// exportCSV mimics the full portal export: the 14 report columns plus the
// precinct, jurisdiction, and state-plane columns the projection discards.
const exportCSV = `INCIDENT_KEY,OCCUR_DATE,OCCUR_TIME,BORO,PRECINCT,JURISDICTION_CODE,LOCATION_DESC,STATISTICAL_MURDER_FLAG,PERP_AGE_GROUP,PERP_SEX,PERP_RACE,VIC_AGE_GROUP,VIC_SEX,VIC_RACE,X_COORD_CD,Y_COORD_CD,Latitude,Longitude,Lon_Lat
236168668,11/11/2021,15:04:00,BROOKLYN,79,0,GROCERY/BODEGA,true,18-24,M,BLACK,25-44,M,BLACK,996313,183826,40.67116,-73.95356,POINT (-73.95356 40.67116)
228750831,05/27/2020,21:30:00,BRONX,40,0,,false,25-34,(null),BLACK,<18,F,(Other),1006543,236711,40.81635,-73.91654,POINT (-73.91654 40.81635)
212724883,,02:15:00,,0,,,N,UNKNOWN,U,UNKNOWN,45-64,M,BLACK,,,,,
`

type mockLoader struct {
	csv   string
	err   error
	calls atomic.Int64
}

func (m *mockLoader) LoadTable(_ context.Context) (*dataset.Table, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return dataset.ReadCSV(strings.NewReader(m.csv))
}

func defaultOptions() pipeline.Options {
	return pipeline.Options{
		SourceURL:       "https://example.org/rows.csv",
		RefreshInterval: 15 * time.Millisecond,
		TrendFromYear:   2020,
		TrendTargetYear: 2027,
	}
}

func newTestPipeline(loader pipeline.Loader, opts pipeline.Options) *pipeline.Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return pipeline.New(loader, logger, observability.NewMetricsForTesting(), opts)
}

func TestPipeline_RunOnce(t *testing.T) {
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	pipeline.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { pipeline.SetClock(nil) })

	p := newTestPipeline(&mockLoader{csv: exportCSV}, defaultOptions())

	rep, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fixed, rep.GeneratedAt)
	assert.Equal(t, "https://example.org/rows.csv", rep.SourceURL)
	assert.Equal(t, 3, rep.TotalIncidents)
	assert.Equal(t, 1, rep.TotalMurders)

	boroughs := map[string][2]int{}
	for _, bc := range rep.Boroughs {
		boroughs[bc.Borough] = [2]int{bc.Total, bc.Murders}
	}
	assert.Equal(t, [2]int{1, 1}, boroughs["BROOKLYN"])
	assert.Equal(t, [2]int{1, 0}, boroughs["BRONX"])
	assert.Equal(t, [2]int{1, 0}, boroughs[domain.Unknown])

	years := map[int]int{}
	for _, yc := range rep.Years {
		years[yc.Year] = yc.Count
	}
	assert.Equal(t, map[int]int{0: 1, 2020: 1, 2021: 1}, years)

	require.NotNil(t, rep.Trend)
	assert.Equal(t, 2020, rep.Trend.FromYear)
	assert.Equal(t, 2027, rep.Trend.TargetYear)
	assert.InDelta(t, 0.0, rep.Trend.Slope, 1e-9)
	assert.InDelta(t, 1.0, rep.Trend.Predicted, 1e-9)

	current, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, rep.TotalIncidents, current.TotalIncidents)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_RunOnce_FetchError(t *testing.T) {
	p := newTestPipeline(&mockLoader{err: errors.New("connection refused")}, defaultOptions())

	_, err := p.RunOnce(context.Background())
	require.Error(t, err)

	_, ok := p.Current()
	assert.False(t, ok)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_RunOnce_SchemaError(t *testing.T) {
	ldr := &mockLoader{csv: "INCIDENT_KEY,OCCUR_DATE\n1,01/01/2020\n"}
	p := newTestPipeline(ldr, defaultOptions())

	_, err := p.RunOnce(context.Background())

	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, domain.ColBorough)
	assert.Contains(t, schemaErr.Missing, domain.ColMurderFlag)
}

func TestPipeline_RunOnce_TrendSkippedWhenInsufficient(t *testing.T) {
	opts := defaultOptions()
	opts.TrendFromYear = 2022 // beyond every year in the fixture

	p := newTestPipeline(&mockLoader{csv: exportCSV}, opts)

	rep, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rep.Trend)
	assert.Equal(t, 3, rep.TotalIncidents)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_RunOnce_KeepsPreviousReportOnError(t *testing.T) {
	ldr := &mockLoader{csv: exportCSV}
	p := newTestPipeline(ldr, defaultOptions())

	first, err := p.RunOnce(context.Background())
	require.NoError(t, err)

	ldr.err = errors.New("source down")
	_, err = p.RunOnce(context.Background())
	require.Error(t, err)

	current, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, first.TotalIncidents, current.TotalIncidents)
	assert.Equal(t, first.GeneratedAt, current.GeneratedAt)
}

func TestPipeline_Run_RefreshLoop(t *testing.T) {
	ldr := &mockLoader{csv: exportCSV}
	p := newTestPipeline(ldr, defaultOptions())

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ldr.calls.Load(), int64(2))

	_, ok := p.Current()
	assert.True(t, ok)
}

func TestPipeline_Run_ContextCancelled(t *testing.T) {
	ldr := &mockLoader{csv: exportCSV}
	p := newTestPipeline(ldr, defaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, ldr.calls.Load())

	_, ok := p.Current()
	assert.False(t, ok)
}

func TestCleanTable(t *testing.T) {
	table, err := dataset.ReadCSV(strings.NewReader(exportCSV))
	require.NoError(t, err)

	incidents, err := pipeline.CleanTable(table)
	require.NoError(t, err)
	require.Len(t, incidents, 3)

	clean := incidents[0]
	assert.Equal(t, "236168668", clean.IncidentKey)
	assert.Equal(t, 2021, clean.OccurYear)
	assert.Equal(t, "BROOKLYN", clean.Borough)
	assert.True(t, clean.IsMurder)
	assert.Equal(t, "18-24", clean.PerpAgeGroup)
	assert.Equal(t, "GROCERY/BODEGA", clean.LocationDesc)
	require.NotNil(t, clean.Latitude)
	assert.InDelta(t, 40.67116, *clean.Latitude, 1e-9)

	messy := incidents[1]
	assert.Equal(t, domain.Unknown, messy.PerpAgeGroup) // "25-34" is not an export bracket
	assert.Equal(t, domain.Unknown, messy.PerpSex)
	assert.Equal(t, domain.Unknown, messy.VicRace)
	assert.Equal(t, "F", messy.VicSex)
	assert.Equal(t, "<18", messy.VicAgeGroup)
	assert.False(t, messy.IsMurder)

	undated := incidents[2]
	assert.True(t, undated.OccurDate.IsZero())
	assert.Equal(t, 0, undated.OccurYear)
	assert.Equal(t, domain.Unknown, undated.Borough)
	assert.Equal(t, "U", undated.PerpSex) // real code, passes through
	assert.Equal(t, domain.Unknown, undated.PerpRace)
	assert.False(t, undated.IsMurder)
	assert.Nil(t, undated.Latitude)
	assert.Nil(t, undated.Longitude)
}

func TestCleanTable_MissingColumns(t *testing.T) {
	table := dataset.New([]string{"INCIDENT_KEY", "OCCUR_DATE"}, [][]string{{"1", "01/01/2020"}})

	_, err := pipeline.CleanTable(table)

	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Missing, 12)
}
