package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAgeGroup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"under 18", "<18", "<18"},
		{"18-24", "18-24", "18-24"},
		{"25-44", "25-44", "25-44"},
		{"45-64", "45-64", "45-64"},
		{"65 plus", "65+", "65+"},
		{"bracket with spaces", "  18-24  ", "18-24"},
		{"unlisted bracket", "25-34", Unknown},
		{"data entry artifact", "1020", Unknown},
		{"null token", "(null)", Unknown},
		{"UNKNOWN token", "UNKNOWN", Unknown},
		{"lowercase rejected", "unknown", Unknown},
		{"empty string", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeAgeGroup(tt.input))
		})
	}
}

func TestCollapseUnknownSex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"male", "M", "M"},
		{"female", "F", "F"},
		{"nonbinary marker", "X", "X"},
		{"unseen value passes through", "U", "U"},
		{"empty", "", Unknown},
		{"null token", "(null)", Unknown},
		{"UNKNOWN token", "UNKNOWN", Unknown},
		{"other token passes through for sex", "(Other)", "(Other)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collapseUnknown(tt.input, sexUnknownTokens))
		})
	}
}

func TestCollapseUnknownRace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"value passes through", "BLACK", "BLACK"},
		{"multi word value", "WHITE HISPANIC", "WHITE HISPANIC"},
		{"unseen value passes through", "MARTIAN", "MARTIAN"},
		{"empty", "", Unknown},
		{"null token", "(null)", Unknown},
		{"other token", "(Other)", Unknown},
		{"UNKNOWN token", "UNKNOWN", Unknown},
		{"lowercase unknown passes through", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collapseUnknown(tt.input, raceUnknownTokens))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"valid date", "01/15/2020", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"end of year", "12/31/2006", time.Date(2006, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"with spaces", " 03/02/2021 ", time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"not a date", "not-a-date", time.Time{}},
		{"unpadded month", "1/15/2020", time.Time{}},
		{"iso layout rejected", "2020-01-15", time.Time{}},
		{"impossible date", "13/45/2020", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseDate(tt.input))
		})
	}
}

func TestParseMurderFlag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase true", "true", true},
		{"uppercase true", "TRUE", true},
		{"single letter Y", "Y", true},
		{"yes", "yes", true},
		{"one", "1", true},
		{"lowercase false", "false", false},
		{"single letter N", "N", false},
		{"empty", "", false},
		{"garbage", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseMurderFlag(tt.input))
		})
	}
}

func TestParseCoord(t *testing.T) {
	t.Run("valid coordinate", func(t *testing.T) {
		got := parseCoord("40.742")
		if assert.NotNil(t, got) {
			assert.InDelta(t, 40.742, *got, 1e-9)
		}
	})

	t.Run("negative longitude", func(t *testing.T) {
		got := parseCoord("-73.9857")
		if assert.NotNil(t, got) {
			assert.InDelta(t, -73.9857, *got, 1e-9)
		}
	})

	t.Run("blank stays null", func(t *testing.T) {
		assert.Nil(t, parseCoord(""))
	})

	t.Run("non numeric stays null", func(t *testing.T) {
		assert.Nil(t, parseCoord("n/a"))
	})
}

func TestNormalizeIncident(t *testing.T) {
	t.Run("clean row", func(t *testing.T) {
		raw := RawIncident{
			IncidentKey:  "236168668",
			OccurDate:    "01/15/2020",
			OccurTime:    "21:36:00",
			Borough:      "BROOKLYN",
			MurderFlag:   "true",
			LocationDesc: "MULTI DWELL - PUBLIC HOUS",
			PerpAgeGroup: "18-24",
			PerpSex:      "M",
			PerpRace:     "BLACK",
			VicAgeGroup:  "25-44",
			VicSex:       "F",
			VicRace:      "WHITE HISPANIC",
			Latitude:     "40.66992",
			Longitude:    "-73.91079",
		}

		got := NormalizeIncident(raw)

		assert.Equal(t, "236168668", got.IncidentKey)
		assert.Equal(t, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), got.OccurDate)
		assert.Equal(t, 2020, got.OccurYear)
		assert.Equal(t, "21:36:00", got.OccurTime)
		assert.Equal(t, "BROOKLYN", got.Borough)
		assert.True(t, got.IsMurder)
		assert.Equal(t, "MULTI DWELL - PUBLIC HOUS", got.LocationDesc)
		assert.Equal(t, "18-24", got.PerpAgeGroup)
		assert.Equal(t, "M", got.PerpSex)
		assert.Equal(t, "BLACK", got.PerpRace)
		assert.Equal(t, "25-44", got.VicAgeGroup)
		assert.Equal(t, "F", got.VicSex)
		assert.Equal(t, "WHITE HISPANIC", got.VicRace)
		if assert.NotNil(t, got.Latitude) {
			assert.InDelta(t, 40.66992, *got.Latitude, 1e-9)
		}
		if assert.NotNil(t, got.Longitude) {
			assert.InDelta(t, -73.91079, *got.Longitude, 1e-9)
		}
	})

	t.Run("degenerate row absorbs into Unknown and null", func(t *testing.T) {
		raw := RawIncident{
			IncidentKey:  "9001",
			OccurDate:    "not-a-date",
			Borough:      "",
			MurderFlag:   "maybe",
			PerpAgeGroup: "25-34",
			PerpSex:      "",
			PerpRace:     "(Other)",
			VicAgeGroup:  "(null)",
			VicSex:       "UNKNOWN",
			VicRace:      "(null)",
			Latitude:     "not-a-coord",
		}

		got := NormalizeIncident(raw)

		assert.True(t, got.OccurDate.IsZero())
		assert.Equal(t, 0, got.OccurYear)
		assert.Equal(t, Unknown, got.Borough)
		assert.False(t, got.IsMurder)
		assert.Equal(t, Unknown, got.PerpAgeGroup)
		assert.Equal(t, Unknown, got.PerpSex)
		assert.Equal(t, Unknown, got.PerpRace)
		assert.Equal(t, Unknown, got.VicAgeGroup)
		assert.Equal(t, Unknown, got.VicSex)
		assert.Equal(t, Unknown, got.VicRace)
		assert.Nil(t, got.Latitude)
		assert.Nil(t, got.Longitude)
	})

	t.Run("other token collapses for race only", func(t *testing.T) {
		raw := RawIncident{
			PerpSex:  "(Other)",
			VicSex:   "(Other)",
			PerpRace: "(Other)",
			VicRace:  "(Other)",
		}

		got := NormalizeIncident(raw)

		assert.Equal(t, "(Other)", got.PerpSex)
		assert.Equal(t, "(Other)", got.VicSex)
		assert.Equal(t, Unknown, got.PerpRace)
		assert.Equal(t, Unknown, got.VicRace)
	})
}

func TestRequiredColumns(t *testing.T) {
	cols := RequiredColumns()

	assert.Len(t, cols, 14)
	assert.Equal(t, ColIncidentKey, cols[0])
	assert.Contains(t, cols, ColMurderFlag)
	assert.Contains(t, cols, ColLatitude)
}
