package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joonbang02/tripweaver/internal/types"
)

func TestScorePOI(t *testing.T) {
	t.Run("category base plus scaled quality", func(t *testing.T) {
		p := types.POI{Category: types.CategoryDining, Quality: 2}
		assert.InDelta(t, 0.9+0.45*2, ScorePOI(p, nil), 1e-9)
	})

	t.Run("negative quality drags the score down", func(t *testing.T) {
		p := types.POI{Category: types.CategorySightseeing, Quality: -2}
		assert.Less(t, ScorePOI(p, nil), categoryBase[types.CategorySightseeing])
	})

	t.Run("relaxation boosts nature over dining", func(t *testing.T) {
		nature := types.POI{Category: types.CategoryNature}
		dining := types.POI{Category: types.CategoryDining}
		styles := []types.TravelStyle{types.StyleRelaxation}
		assert.Greater(t, ScorePOI(nature, styles), ScorePOI(dining, styles))
	})

	t.Run("foodie flips the preference", func(t *testing.T) {
		nature := types.POI{Category: types.CategoryNature}
		dining := types.POI{Category: types.CategoryDining}
		styles := []types.TravelStyle{types.StyleFoodie}
		assert.Greater(t, ScorePOI(dining, styles), ScorePOI(nature, styles))
	})

	t.Run("multiple styles stack", func(t *testing.T) {
		cafe := types.POI{Category: types.CategoryCafe}
		both := ScorePOI(cafe, []types.TravelStyle{types.StyleRelaxation, types.StyleFoodie})
		assert.InDelta(t, 0.7+0.3+0.3, both, 1e-9)
	})
}

func TestSortByPreference(t *testing.T) {
	a := types.POI{SourceID: "a", Category: types.CategoryConvenience}
	b := types.POI{SourceID: "b", Category: types.CategorySightseeing}
	c := types.POI{SourceID: "c", Category: types.CategorySightseeing}

	t.Run("descending by score", func(t *testing.T) {
		out := sortByPreference([]types.POI{a, b}, nil)
		assert.Equal(t, "b", out[0].SourceID)
	})

	t.Run("stable for equal scores", func(t *testing.T) {
		out := sortByPreference([]types.POI{b, c}, nil)
		assert.Equal(t, "b", out[0].SourceID)
		assert.Equal(t, "c", out[1].SourceID)
	})

	t.Run("input slice untouched", func(t *testing.T) {
		in := []types.POI{a, b}
		_ = sortByPreference(in, nil)
		assert.Equal(t, "a", in[0].SourceID)
	})
}
