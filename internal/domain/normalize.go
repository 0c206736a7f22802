package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the month/day/four-digit-year format of OCCUR_DATE cells.
const dateLayout = "01/02/2006"

// Placeholder tokens that collapse to Unknown, per field family. Race carries
// one extra token, "(Other)"; sex and borough deliberately do not.
var (
	sexUnknownTokens     = []string{"", "(null)", "UNKNOWN"}
	raceUnknownTokens    = []string{"", "(null)", "(Other)", "UNKNOWN"}
	boroughUnknownTokens = []string{"", "(null)"}
)

// NormalizeIncident recodes one raw row into a cleaned Incident. It never
// fails: unparseable dates become the zero time, degenerate categorical
// values collapse to Unknown, bad coordinates become nil. One raw row always
// yields exactly one cleaned row.
func NormalizeIncident(raw RawIncident) Incident {
	occurDate := parseDate(raw.OccurDate)
	year := 0
	if !occurDate.IsZero() {
		year = occurDate.Year()
	}

	return Incident{
		IncidentKey:  strings.TrimSpace(raw.IncidentKey),
		OccurDate:    occurDate,
		OccurYear:    year,
		OccurTime:    strings.TrimSpace(raw.OccurTime),
		Borough:      collapseUnknown(raw.Borough, boroughUnknownTokens),
		IsMurder:     parseMurderFlag(raw.MurderFlag),
		LocationDesc: strings.TrimSpace(raw.LocationDesc),
		PerpAgeGroup: normalizeAgeGroup(raw.PerpAgeGroup),
		PerpSex:      collapseUnknown(raw.PerpSex, sexUnknownTokens),
		PerpRace:     collapseUnknown(raw.PerpRace, raceUnknownTokens),
		VicAgeGroup:  normalizeAgeGroup(raw.VicAgeGroup),
		VicSex:       collapseUnknown(raw.VicSex, sexUnknownTokens),
		VicRace:      collapseUnknown(raw.VicRace, raceUnknownTokens),
		Latitude:     parseCoord(raw.Latitude),
		Longitude:    parseCoord(raw.Longitude),
	}
}

// normalizeAgeGroup validates an age bracket against the brackets the dataset
// documents. Accepts: "<18", "18-24", "25-44", "45-64", "65+" (exact matches
// only). Everything else, blanks and data-entry artifacts like "1020" or
// "25-34" included, collapses to Unknown.
func normalizeAgeGroup(value string) string {
	value = strings.TrimSpace(value)
	switch value {
	case "<18", "18-24", "25-44", "45-64", "65+":
		return value
	default:
		return Unknown
	}
}

// collapseUnknown maps a field's placeholder tokens to Unknown and passes
// every other value through verbatim, unvalidated.
func collapseUnknown(value string, placeholders []string) string {
	value = strings.TrimSpace(value)
	if slices.Contains(placeholders, value) {
		return Unknown
	}
	return value
}

// parseDate parses an occurrence date leniently. A cell that does not match
// the export's MM/DD/YYYY layout yields the zero time, not an error; the row
// still counts toward totals, just not toward any year.
func parseDate(value string) time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseMurderFlag recodes the statistical murder flag to a boolean. Exports
// have carried both "true"/"false" and "Y"/"N" spellings over the years;
// anything unrecognized counts as false rather than failing the row.
func parseMurderFlag(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TRUE", "T", "Y", "YES", "1":
		return true
	default:
		return false
	}
}

// parseCoord parses a WGS-84 coordinate cell, returning nil when it is blank
// or not numeric.
func parseCoord(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &v
}
