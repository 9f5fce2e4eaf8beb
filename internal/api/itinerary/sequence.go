package itinerary

import (
	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

// sequenceDay orders one day's POIs into an approximate short walking loop:
// start from the point nearest the day centroid, then greedily append the
// nearest unvisited point. A heuristic, not an optimal tour. Sets of size <=2
// come back unchanged.
func sequenceDay(pois []types.POI) []types.POI {
	if len(pois) <= 2 {
		out := make([]types.POI, len(pois))
		copy(out, pois)
		return out
	}

	coords := make([]types.Coordinate, len(pois))
	for i, p := range pois {
		coords[i] = p.Coord
	}
	centroid := geo.Centroid(coords)

	remaining := make([]types.POI, len(pois))
	copy(remaining, pois)

	// Start nearest the centroid.
	start := 0
	startDist := geo.Haversine(centroid, remaining[0].Coord)
	for i := 1; i < len(remaining); i++ {
		if d := geo.Haversine(centroid, remaining[i].Coord); d < startDist {
			start, startDist = i, d
		}
	}

	ordered := make([]types.POI, 0, len(pois))
	ordered = append(ordered, remaining[start])
	remaining = append(remaining[:start], remaining[start+1:]...)

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		next := 0
		nextDist := geo.Haversine(last.Coord, remaining[0].Coord)
		for i := 1; i < len(remaining); i++ {
			if d := geo.Haversine(last.Coord, remaining[i].Coord); d < nextDist {
				next, nextDist = i, d
			}
		}
		ordered = append(ordered, remaining[next])
		remaining = append(remaining[:next], remaining[next+1:]...)
	}
	return ordered
}
