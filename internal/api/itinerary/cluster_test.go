package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joonbang02/tripweaver/internal/types"
)

func poiAt(id string, lat, lon float64) types.POI {
	return types.POI{
		SourceID: id,
		Name:     id,
		Coord:    types.Coordinate{Latitude: lat, Longitude: lon},
		Category: types.CategorySightseeing,
	}
}

func TestClusterIntoDays(t *testing.T) {
	t.Run("every input appears in exactly one bucket", func(t *testing.T) {
		var pois []types.POI
		for i := 0; i < 17; i++ {
			pois = append(pois, poiAt(fmt.Sprintf("n/%d", i), 35.1+0.01*float64(i%5), 129.0+0.01*float64(i/5)))
		}

		buckets := clusterIntoDays(pois, 3, 12)
		require.Len(t, buckets, 3)

		seen := map[string]int{}
		for _, b := range buckets {
			for _, p := range b.POIs {
				seen[p.SourceID]++
			}
		}
		assert.Len(t, seen, len(pois))
		for id, n := range seen {
			assert.Equal(t, 1, n, "poi %s assigned %d times", id, n)
		}
	})

	t.Run("separated groups land in separate days", func(t *testing.T) {
		pois := []types.POI{
			poiAt("w/1", 35.100, 129.000),
			poiAt("w/2", 35.101, 129.001),
			poiAt("w/3", 35.102, 129.000),
			poiAt("e/1", 35.100, 129.200),
			poiAt("e/2", 35.101, 129.201),
			poiAt("e/3", 35.102, 129.200),
		}

		buckets := clusterIntoDays(pois, 2, 12)

		byPrefix := func(b types.DayBucket) map[byte]int {
			out := map[byte]int{}
			for _, p := range b.POIs {
				out[p.SourceID[0]]++
			}
			return out
		}
		for _, b := range buckets {
			prefixes := byPrefix(b)
			assert.Len(t, prefixes, 1, "day %d mixes groups: %v", b.Day, prefixes)
		}
	})

	t.Run("days numbered from one", func(t *testing.T) {
		buckets := clusterIntoDays([]types.POI{poiAt("n/1", 35, 129)}, 3, 12)
		for i, b := range buckets {
			assert.Equal(t, i+1, b.Day)
		}
	})

	t.Run("more days than points leaves trailing days empty", func(t *testing.T) {
		pois := []types.POI{poiAt("n/1", 35, 129), poiAt("n/2", 35.1, 129.1)}
		buckets := clusterIntoDays(pois, 4, 12)
		require.Len(t, buckets, 4)

		var assigned, empty int
		for _, b := range buckets {
			require.NotNil(t, b.POIs)
			if len(b.POIs) == 0 {
				empty++
			}
			assigned += len(b.POIs)
		}
		assert.Equal(t, 2, assigned)
		assert.Equal(t, 2, empty)
	})

	t.Run("no points yields empty non-nil buckets", func(t *testing.T) {
		buckets := clusterIntoDays(nil, 3, 12)
		require.Len(t, buckets, 3)
		for _, b := range buckets {
			require.NotNil(t, b.POIs)
			assert.Empty(t, b.POIs)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		var pois []types.POI
		for i := 0; i < 11; i++ {
			pois = append(pois, poiAt(fmt.Sprintf("n/%d", i), 35.1+0.013*float64(i), 129.0+0.007*float64(i*i%7)))
		}
		first := clusterIntoDays(pois, 3, 12)
		second := clusterIntoDays(pois, 3, 12)
		assert.Equal(t, first, second)
	})
}
