// Package domain models NYPD shooting incident records.
//
// # Data Source
//
// Incident records come from the NYPD Shooting Incident Data (Historic)
// dataset on the NYC Open Data portal
// (https://data.cityofnewyork.us/d/833y-fsy8), one row per shooting victim
// from 2006 through the end of the previous calendar year. The portal serves
// the dataset as a CSV export with a fixed, case-sensitive header row.
//
// # Export Conventions
//
// Dates and times:
//
//	OCCUR_DATE is MM/DD/YYYY, e.g. "01/15/2020". OCCUR_TIME is a wall-clock
//	HH:MM:SS string, carried through unchanged. A date cell that fails to
//	parse is kept as null rather than rejected; the row still counts toward
//	totals, just not toward any year.
//
// Placeholder tokens:
//
//	The export marks missing demographic values inconsistently: empty cells,
//	the literal string "(null)", and the literal string "UNKNOWN" all occur.
//	Race fields additionally use "(Other)". During normalization all of
//	these collapse to the single label "Unknown". Sex fields keep "(Other)"
//	verbatim because the export never uses it there; only race gets the
//	extra token.
//
// Age brackets:
//
//	PERP_AGE_GROUP and VIC_AGE_GROUP use the brackets <18, 18-24, 25-44,
//	45-64, 65+. The columns also contain data-entry artifacts ("1020",
//	"224", "940") that match no bracket, so membership in the exact
//	five-value set is the only recoding rule: every non-member collapses to
//	"Unknown". Sex and race are the opposite case, a token blacklist with
//	verbatim passthrough, because their legitimate value sets are not
//	documented anywhere.
//
// Murder flag:
//
//	STATISTICAL_MURDER_FLAG marks a shooting counted as a murder in the
//	department's statistics. Export vintages spell it "true"/"false" or
//	"Y"/"N"; both parse, and anything else counts as false.
//
// Coordinates:
//
//	Latitude and Longitude are WGS-84 decimal degrees and the only
//	mixed-case header names. Blank or malformed cells stay null; no
//	geocoding is attempted.
//
// Normalization never rejects a row. Each degenerate cell is absorbed into
// "Unknown" or null field by field, so a single bad record cannot halt a
// report run.
package domain
