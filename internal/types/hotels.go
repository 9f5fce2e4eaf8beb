package types

import "github.com/google/uuid"

// HotelCandidate is one candidate lodging with its derived fit score.
// At most one candidate per generation carries Selected=true.
type HotelCandidate struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Coord        Coordinate `json:"coord"`
	Stars        int        `json:"stars"` // 1..5
	NightlyPrice float64    `json:"nightly_price"`
	Amenities    []string   `json:"amenities,omitempty"`
	DistanceKm   float64    `json:"distance_km"`
	FitScore     float64    `json:"fit_score"`
	Selected     bool       `json:"selected"`
}

// HasAmenity reports whether the candidate lists the given amenity tag.
func (h HotelCandidate) HasAmenity(tag string) bool {
	for _, a := range h.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}
