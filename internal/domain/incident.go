package domain

import "time"

// Column names exactly as the source CSV header spells them. Latitude and
// Longitude are the only mixed-case names in the export.
const (
	ColIncidentKey  = "INCIDENT_KEY"
	ColOccurDate    = "OCCUR_DATE"
	ColOccurTime    = "OCCUR_TIME"
	ColBorough      = "BORO"
	ColMurderFlag   = "STATISTICAL_MURDER_FLAG"
	ColLocationDesc = "LOCATION_DESC"
	ColPerpAgeGroup = "PERP_AGE_GROUP"
	ColPerpSex      = "PERP_SEX"
	ColPerpRace     = "PERP_RACE"
	ColVicAgeGroup  = "VIC_AGE_GROUP"
	ColVicSex       = "VIC_SEX"
	ColVicRace      = "VIC_RACE"
	ColLatitude     = "Latitude"
	ColLongitude    = "Longitude"
)

// Unknown is the single label every non-informative categorical value
// collapses to during normalization.
const Unknown = "Unknown"

// RequiredColumns returns the columns the report reads, in projection order.
// The export carries more (precinct, jurisdiction code, state-plane
// coordinates); everything not listed here is discarded up front.
func RequiredColumns() []string {
	return []string{
		ColIncidentKey,
		ColOccurDate,
		ColOccurTime,
		ColBorough,
		ColMurderFlag,
		ColLocationDesc,
		ColPerpAgeGroup,
		ColPerpSex,
		ColPerpRace,
		ColVicAgeGroup,
		ColVicSex,
		ColVicRace,
		ColLatitude,
		ColLongitude,
	}
}

// Boroughs returns the five NYC boroughs in the order tables and charts
// present them.
func Boroughs() []string {
	return []string{"BRONX", "BROOKLYN", "MANHATTAN", "QUEENS", "STATEN ISLAND"}
}

// RawIncident is one projected CSV row before any recoding, every cell the
// exported string verbatim.
type RawIncident struct {
	IncidentKey  string
	OccurDate    string
	OccurTime    string
	Borough      string
	MurderFlag   string
	LocationDesc string
	PerpAgeGroup string
	PerpSex      string
	PerpRace     string
	VicAgeGroup  string
	VicSex       string
	VicRace      string
	Latitude     string
	Longitude    string
}

// Incident is the cleaned record downstream consumers read. It is produced
// once by NormalizeIncident and never mutated afterwards.
type Incident struct {
	IncidentKey  string    `json:"incident_key"`
	OccurDate    time.Time `json:"occur_date"`
	OccurYear    int       `json:"occur_year"`
	OccurTime    string    `json:"occur_time,omitempty"`
	Borough      string    `json:"borough"`
	IsMurder     bool      `json:"is_murder"`
	LocationDesc string    `json:"location_desc,omitempty"`
	PerpAgeGroup string    `json:"perp_age_group"`
	PerpSex      string    `json:"perp_sex"`
	PerpRace     string    `json:"perp_race"`
	VicAgeGroup  string    `json:"vic_age_group"`
	VicSex       string    `json:"vic_sex"`
	VicRace      string    `json:"vic_race"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
}
