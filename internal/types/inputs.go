package types

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// GenerationInputs is the full set of user preferences for one itinerary
// generation. It is passed by value; the Signature content hash keys the
// memoized bundle so identical inputs never recompute.
type GenerationInputs struct {
	Destination  string        `json:"destination"`
	Days         int           `json:"days"`
	Styles       []TravelStyle `json:"styles,omitempty"`
	RadiusKm     float64       `json:"radius_km"`
	MaxPOIs      int           `json:"max_pois"`
	Mode         TravelMode    `json:"mode"`
	ReturnToBase bool          `json:"return_to_base"`
	IncludeDwell bool          `json:"include_dwell"`

	IncludeHotels     bool    `json:"include_hotels"`
	HotelPriceCeiling float64 `json:"hotel_price_ceiling,omitempty"`
	RecenterOnHotel   bool    `json:"recenter_on_hotel"`
}

// Normalize applies defaults and clamps obviously invalid values. Called once
// at the handler boundary so the engine can trust its inputs.
func (g *GenerationInputs) Normalize() {
	g.Destination = strings.TrimSpace(g.Destination)
	if g.Days < 1 {
		g.Days = 1
	}
	if g.Days > 14 {
		g.Days = 14
	}
	if g.RadiusKm <= 0 {
		g.RadiusKm = 5
	}
	if g.MaxPOIs <= 0 {
		g.MaxPOIs = 60
	}
	if g.Mode == "" {
		g.Mode = ModeAuto
	}
}

// HasStyle reports whether the given style was selected.
func (g GenerationInputs) HasStyle(s TravelStyle) bool {
	for _, st := range g.Styles {
		if st == s {
			return true
		}
	}
	return false
}

// Signature returns a stable FNV-64a content hash of the inputs. Style order
// does not affect the hash.
func (g GenerationInputs) Signature() string {
	styles := make([]string, 0, len(g.Styles))
	for _, s := range g.Styles {
		styles = append(styles, string(s))
	}
	sort.Strings(styles)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%s|%.3f|%d|%s|%t|%t|%t|%.2f|%t",
		strings.ToLower(g.Destination),
		g.Days,
		strings.Join(styles, ","),
		g.RadiusKm,
		g.MaxPOIs,
		g.Mode,
		g.ReturnToBase,
		g.IncludeDwell,
		g.IncludeHotels,
		g.HotelPriceCeiling,
		g.RecenterOnHotel,
	)
	return fmt.Sprintf("%016x", h.Sum64())
}
