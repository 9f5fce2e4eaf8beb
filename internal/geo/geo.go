// Package geo holds the small amount of spherical geometry the itinerary
// engine needs: great-circle distance, centroids, and the flat-earth bounding
// box approximation used for city-scale POI queries.
package geo

import (
	"math"

	"github.com/joonbang02/tripweaver/internal/types"
)

const earthRadiusKm = 6371.0

// Kilometers per degree of latitude, and per degree of longitude at the
// equator. Adequate at city scale; not valid near the poles.
const (
	KmPerDegreeLat = 110.574
	KmPerDegreeLon = 111.320
)

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b types.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Centroid returns the arithmetic mean coordinate of points. The zero
// Coordinate is returned for an empty slice.
func Centroid(points []types.Coordinate) types.Coordinate {
	if len(points) == 0 {
		return types.Coordinate{}
	}
	var lat, lon float64
	for _, p := range points {
		lat += p.Latitude
		lon += p.Longitude
	}
	n := float64(len(points))
	return types.Coordinate{Latitude: lat / n, Longitude: lon / n}
}

// BoundingBox is a south/west/north/east box in degrees.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

// BoxAround converts a radius in kilometers around center into a bounding box
// using the flat-earth approximation (1 degree latitude is ~110.574 km, one
// degree longitude shrinks with cos(latitude)).
func BoxAround(center types.Coordinate, radiusKm float64) BoundingBox {
	dLat := radiusKm / KmPerDegreeLat
	lonScale := KmPerDegreeLon * math.Cos(center.Latitude*math.Pi/180)
	// Guard against degenerate boxes at extreme latitudes.
	if lonScale < 1e-6 {
		lonScale = 1e-6
	}
	dLon := radiusKm / lonScale
	return BoundingBox{
		South: center.Latitude - dLat,
		West:  center.Longitude - dLon,
		North: center.Latitude + dLat,
		East:  center.Longitude + dLon,
	}
}
