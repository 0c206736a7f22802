package pipeline

import (
	"fmt"

	"github.com/tiannaparris/nypd-shooting-report/internal/dataset"
	"github.com/tiannaparris/nypd-shooting-report/internal/domain"
)

// CleanTable projects the raw table down to the report columns and
// normalizes every row. Rows are never dropped; a missing required column
// surfaces as a *dataset.SchemaError.
func CleanTable(table *dataset.Table) ([]domain.Incident, error) {
	projected, err := table.Project(domain.RequiredColumns()...)
	if err != nil {
		return nil, fmt.Errorf("project columns: %w", err)
	}

	incidents := make([]domain.Incident, 0, projected.Len())
	for i := 0; i < projected.Len(); i++ {
		incidents = append(incidents, domain.NormalizeIncident(rawIncident(projected, i)))
	}
	return incidents, nil
}

func rawIncident(t *dataset.Table, row int) domain.RawIncident {
	return domain.RawIncident{
		IncidentKey:  t.Value(row, domain.ColIncidentKey),
		OccurDate:    t.Value(row, domain.ColOccurDate),
		OccurTime:    t.Value(row, domain.ColOccurTime),
		Borough:      t.Value(row, domain.ColBorough),
		MurderFlag:   t.Value(row, domain.ColMurderFlag),
		LocationDesc: t.Value(row, domain.ColLocationDesc),
		PerpAgeGroup: t.Value(row, domain.ColPerpAgeGroup),
		PerpSex:      t.Value(row, domain.ColPerpSex),
		PerpRace:     t.Value(row, domain.ColPerpRace),
		VicAgeGroup:  t.Value(row, domain.ColVicAgeGroup),
		VicSex:       t.Value(row, domain.ColVicSex),
		VicRace:      t.Value(row, domain.ColVicRace),
		Latitude:     t.Value(row, domain.ColLatitude),
		Longitude:    t.Value(row, domain.ColLongitude),
	}
}
