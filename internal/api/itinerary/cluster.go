package itinerary

import (
	"github.com/joonbang02/tripweaver/internal/types"
)

// clusterIntoDays partitions pois into days spatial buckets via a simplified
// K-means over (lat, lon). Everything is deterministic: centroids initialize
// by striding through the point list, and assignment uses squared Euclidean
// distance in coordinate space. K is clamped to the point count; trailing
// days come back as empty buckets.
func clusterIntoDays(pois []types.POI, days, maxRounds int) []types.DayBucket {
	buckets := make([]types.DayBucket, days)
	for i := range buckets {
		buckets[i] = types.DayBucket{Day: i + 1, POIs: []types.POI{}}
	}
	if len(pois) == 0 {
		return buckets
	}

	k := days
	if len(pois) < k {
		k = len(pois)
	}

	type point struct{ lat, lon float64 }
	centroids := make([]point, k)
	stride := len(pois) / k
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < k; i++ {
		p := pois[(i*stride)%len(pois)]
		centroids[i] = point{p.Coord.Latitude, p.Coord.Longitude}
	}

	assignment := make([]int, len(pois))
	for round := 0; round < maxRounds; round++ {
		changed := false
		for i, p := range pois {
			best, bestDist := 0, sqDist(p, centroids[0].lat, centroids[0].lon)
			for c := 1; c < k; c++ {
				if d := sqDist(p, centroids[c].lat, centroids[c].lon); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if !changed && round > 0 {
			break
		}

		// Recompute centroids; a centroid with no members keeps its position.
		sums := make([]point, k)
		counts := make([]int, k)
		for i, p := range pois {
			c := assignment[i]
			sums[c].lat += p.Coord.Latitude
			sums[c].lon += p.Coord.Longitude
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centroids[c] = point{sums[c].lat / float64(counts[c]), sums[c].lon / float64(counts[c])}
			}
		}
	}

	for i, p := range pois {
		c := assignment[i]
		buckets[c].POIs = append(buckets[c].POIs, p)
	}
	return buckets
}

func sqDist(p types.POI, lat, lon float64) float64 {
	dLat := p.Coord.Latitude - lat
	dLon := p.Coord.Longitude - lon
	return dLat*dLat + dLon*dLon
}
