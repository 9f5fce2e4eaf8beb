package itinerary

import (
	"sort"

	"github.com/joonbang02/tripweaver/internal/types"
)

// Desirability scoring is a pure function: category prior + scaled intrinsic
// quality + style alignment. Ties keep original order (stable sort).

const qualityWeight = 0.45

var categoryBase = map[types.Category]float64{
	types.CategorySightseeing: 1.0,
	types.CategoryCulture:     1.0,
	types.CategoryNature:      1.0,
	types.CategoryDining:      0.9,
	types.CategoryCafe:        0.7,
	types.CategoryNightlife:   0.6,
	types.CategoryConvenience: 0.3,
}

// styleBonuses maps each travel style to the categories it boosts.
var styleBonuses = map[types.TravelStyle]map[types.Category]float64{
	types.StyleRelaxation: {
		types.CategoryNature: 0.4,
		types.CategoryCafe:   0.3,
	},
	types.StyleFoodie: {
		types.CategoryDining: 0.5,
		types.CategoryCafe:   0.3,
	},
	types.StyleRoadTrip: {
		types.CategoryNature:      0.3,
		types.CategorySightseeing: 0.3,
	},
	types.StyleCulture: {
		types.CategoryCulture:     0.5,
		types.CategorySightseeing: 0.2,
	},
	types.StyleNightlife: {
		types.CategoryNightlife: 0.5,
		types.CategoryDining:    0.2,
	},
}

// ScorePOI returns the sortable desirability of a POI under the given styles.
func ScorePOI(p types.POI, styles []types.TravelStyle) float64 {
	score := categoryBase[p.Category] + qualityWeight*p.Quality
	for _, style := range styles {
		score += styleBonuses[style][p.Category]
	}
	return score
}

// sortByPreference returns a copy of pois sorted by descending desirability.
func sortByPreference(pois []types.POI, styles []types.TravelStyle) []types.POI {
	sorted := make([]types.POI, len(pois))
	copy(sorted, pois)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ScorePOI(sorted[i], styles) > ScorePOI(sorted[j], styles)
	})
	return sorted
}
