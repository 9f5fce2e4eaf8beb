package types

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate is a WGS84 latitude/longitude pair. All distances between
// coordinates are great-circle kilometers.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Category is the fixed POI category enumeration derived from source tags.
type Category string

const (
	CategorySightseeing Category = "sightseeing"
	CategoryCulture     Category = "culture"
	CategoryNature      Category = "nature"
	CategoryDining      Category = "dining"
	CategoryCafe        Category = "cafe"
	CategoryNightlife   Category = "nightlife"
	CategoryConvenience Category = "convenience"
)

// TravelStyle is a user-selected trip flavour that biases POI and hotel scoring.
type TravelStyle string

const (
	StyleRelaxation TravelStyle = "relaxation"
	StyleFoodie     TravelStyle = "foodie"
	StyleRoadTrip   TravelStyle = "roadtrip"
	StyleCulture    TravelStyle = "culture"
	StyleNightlife  TravelStyle = "nightlife"
)

// TravelMode selects the speed/overhead model for travel-time estimation.
type TravelMode string

const (
	ModeAuto    TravelMode = "auto"
	ModeWalking TravelMode = "walking"
	ModeTransit TravelMode = "transit"
	ModeDriving TravelMode = "driving"
)

// POI is an immutable point of interest produced by the acquisition layer.
// Identity is the source-provided ID; two POIs with the same name and a
// coordinate equal to ~1m are duplicates.
type POI struct {
	SourceID string            `json:"source_id"`
	Name     string            `json:"name"`
	Coord    Coordinate        `json:"coord"`
	Category Category          `json:"category"`
	Quality  float64           `json:"quality"` // unbounded, may be negative
	Tags     map[string]string `json:"tags,omitempty"`
}

// DayBucket is the ordered set of POIs assigned to one trip day (1..N).
// A bucket may be empty; callers render empty buckets as rest days.
type DayBucket struct {
	Day  int   `json:"day"`
	POIs []POI `json:"pois"`
}

// Leg is one directed hop of a day's route.
type Leg struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

// DayTravelEstimate aggregates the legs of one day into totals. TotalMinutes
// is rounded to the nearest minute, TotalDistanceKm to 0.01 km.
type DayTravelEstimate struct {
	Day             int        `json:"day"`
	Mode            TravelMode `json:"mode"`
	Legs            []Leg      `json:"legs"`
	TotalDistanceKm float64    `json:"total_distance_km"`
	TotalMinutes    int        `json:"total_minutes"`
	DwellMinutes    int        `json:"dwell_minutes,omitempty"`
	Note            string     `json:"note,omitempty"`
}

// GeocodeResult is the resolver's answer for a free-text destination.
// Found=false is informational, not an error: the pipeline still produces a
// bundle with empty days.
type GeocodeResult struct {
	Found bool        `json:"found"`
	Label string      `json:"label,omitempty"`
	Coord *Coordinate `json:"coord,omitempty"`
	// CountryLevelWarning is set when the chosen label still reads as a
	// country-level match. Advisory only.
	CountryLevelWarning bool `json:"country_level_warning,omitempty"`
}

// ItineraryBundle is the sole outbound contract of the engine: everything the
// rendering, export and narrative layers consume.
type ItineraryBundle struct {
	ID          uuid.UUID           `json:"id"`
	Signature   string              `json:"signature"`
	Destination GeocodeResult       `json:"destination"`
	POIs        []POI               `json:"pois"`
	Days        []DayBucket         `json:"days"`
	Estimates   []DayTravelEstimate `json:"estimates"`
	Hotels      []HotelCandidate    `json:"hotels,omitempty"`
	Notes       []string            `json:"notes,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}
