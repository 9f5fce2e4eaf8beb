package poi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

// Quality scoring weights. Completeness signals are a cheap proxy for
// notability in crowd-sourced data; listings with none of them are usually
// low-value or duplicate entries.
const (
	encyclopediaBonus = 2.0
	imageBonus        = 1.0
	websiteBonus      = 0.5
	hoursBonus        = 0.5
	noSignalPenalty   = -1.5
	shortNamePenalty  = -2.0
)

// categoryBoost ranks categories for the acquisition composite. Mirrors the
// preference scorer's base weights so acquisition and scoring agree on what a
// "good" category is.
var categoryBoost = map[types.Category]float64{
	types.CategorySightseeing: 1.0,
	types.CategoryCulture:     1.0,
	types.CategoryNature:      1.0,
	types.CategoryDining:      0.9,
	types.CategoryCafe:        0.7,
	types.CategoryNightlife:   0.6,
	types.CategoryConvenience: 0.3,
}

// deriveCategory maps raw source tags onto the fixed category enumeration.
// Priority order: amenity, tourism, then leisure/natural/historic tags.
func deriveCategory(tags map[string]string) types.Category {
	switch tags["amenity"] {
	case "restaurant", "fast_food":
		return types.CategoryDining
	case "cafe":
		return types.CategoryCafe
	case "bar", "pub", "nightclub":
		return types.CategoryNightlife
	case "marketplace", "convenience":
		return types.CategoryConvenience
	}
	switch tags["tourism"] {
	case "museum", "gallery", "artwork":
		return types.CategoryCulture
	case "attraction", "viewpoint":
		return types.CategorySightseeing
	}
	if _, ok := tags["leisure"]; ok {
		return types.CategoryNature
	}
	if _, ok := tags["natural"]; ok {
		return types.CategoryNature
	}
	if _, ok := tags["historic"]; ok {
		return types.CategoryCulture
	}
	return types.CategorySightseeing
}

// scoreQuality derives the completeness/notability score for an element.
func scoreQuality(name string, category types.Category, tags map[string]string) float64 {
	var score float64
	var signals int

	if tags["wikipedia"] != "" || tags["wikidata"] != "" {
		score += encyclopediaBonus
		signals++
	}
	if tags["image"] != "" || tags["wikimedia_commons"] != "" {
		score += imageBonus
		signals++
	}
	if tags["website"] != "" || tags["contact:website"] != "" {
		score += websiteBonus
		signals++
	}
	if tags["opening_hours"] != "" {
		score += hoursBonus
		signals++
	}

	// Dining and attraction entries with no completeness signal at all are
	// likely low-value or duplicate listings.
	if signals == 0 {
		switch category {
		case types.CategoryDining, types.CategoryCafe, types.CategorySightseeing:
			score += noSignalPenalty
		}
	}
	if len([]rune(strings.TrimSpace(name))) <= 2 {
		score += shortNamePenalty
	}
	return score
}

// toPOI converts a raw element into a POI record, resolving way centers.
// Returns false for entities without a usable name or position.
func toPOI(el Element) (types.POI, bool) {
	name := strings.TrimSpace(el.Tags["name"])
	if name == "" {
		return types.POI{}, false
	}
	lat, lon := el.Lat, el.Lon
	if el.Center != nil {
		lat, lon = el.Center.Lat, el.Center.Lon
	}
	if lat == 0 && lon == 0 {
		return types.POI{}, false
	}
	category := deriveCategory(el.Tags)
	return types.POI{
		SourceID: fmt.Sprintf("%s/%d", el.Type, el.ID),
		Name:     name,
		Coord:    types.Coordinate{Latitude: lat, Longitude: lon},
		Category: category,
		Quality:  scoreQuality(name, category, el.Tags),
		Tags:     el.Tags,
	}, true
}

// dedupeKey identifies duplicates: same name at the same coordinate rounded
// to 5 decimal places (~1m).
func dedupeKey(p types.POI) string {
	return fmt.Sprintf("%s|%.5f|%.5f", p.Name, p.Coord.Latitude, p.Coord.Longitude)
}

// dedupe keeps the first occurrence of each (name, rounded coordinate) pair.
func dedupe(pois []types.POI) []types.POI {
	seen := make(map[string]struct{}, len(pois))
	out := make([]types.POI, 0, len(pois))
	for _, p := range pois {
		key := dedupeKey(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// rank sorts POIs by the acquisition composite (category boost + quality +
// closeness bonus) and truncates to limit. The sort is stable so equal-scored
// entries keep source order.
func rank(pois []types.POI, center types.Coordinate, radiusKm float64, limit int) []types.POI {
	composite := func(p types.POI) float64 {
		closeness := 1 - geo.Haversine(center, p.Coord)/radiusKm
		if closeness < 0 {
			closeness = 0
		}
		return categoryBoost[p.Category] + p.Quality + closeness
	}

	ranked := make([]types.POI, len(pois))
	copy(ranked, pois)
	sort.SliceStable(ranked, func(i, j int) bool {
		return composite(ranked[i]) > composite(ranked[j])
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
