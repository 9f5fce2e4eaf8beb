package hotel

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/joonbang02/tripweaver/internal/types"
)

// The built-in generator produces plausible candidates when the live
// inventory is disabled or unavailable. Output is deterministic for a given
// center so regeneration with identical inputs stays bit-identical.

var hotelNamePrefixes = []string{
	"Harbor View", "Grand Central", "Old Town", "Riverside", "Hilltop",
	"Garden Gate", "Station Square", "Seaside", "Maple Court", "City Light",
}

var hotelNameSuffixes = []string{"Hotel", "Inn", "Guesthouse", "Residence"}

var amenityPool = []string{"wifi", "parking", "breakfast", "pool", "gym", "spa", "bar"}

const generatedCount = 8

// GenerateCandidates builds a deterministic candidate list around center.
// Positions are scattered within ~2.5 km; stars drive the nightly price.
func GenerateCandidates(center types.Coordinate) []types.HotelCandidate {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.4f:%.4f", center.Latitude, center.Longitude)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	candidates := make([]types.HotelCandidate, 0, generatedCount)
	for i := 0; i < generatedCount; i++ {
		prefix := hotelNamePrefixes[rng.Intn(len(hotelNamePrefixes))]
		suffix := hotelNameSuffixes[rng.Intn(len(hotelNameSuffixes))]

		// Scatter within roughly 2.5 km of the center.
		angle := rng.Float64() * 2 * math.Pi
		distKm := 0.3 + rng.Float64()*2.2
		dLat := distKm / 110.574 * math.Cos(angle)
		dLon := distKm / (111.320 * math.Cos(center.Latitude*math.Pi/180)) * math.Sin(angle)

		stars := 2 + rng.Intn(4) // 2..5
		price := float64(stars)*45 + rng.Float64()*40

		amenities := []string{"wifi"}
		for _, a := range amenityPool[1:] {
			if rng.Float64() < 0.4 {
				amenities = append(amenities, a)
			}
		}

		candidates = append(candidates, types.HotelCandidate{
			ID:           deterministicID(rng),
			Name:         fmt.Sprintf("%s %s", prefix, suffix),
			Coord:        types.Coordinate{Latitude: center.Latitude + dLat, Longitude: center.Longitude + dLon},
			Stars:        stars,
			NightlyPrice: math.Round(price),
			Amenities:    amenities,
		})
	}
	return candidates
}

func deterministicID(rng *rand.Rand) uuid.UUID {
	var b [16]byte
	rng.Read(b[:])
	// Stamp version 4 / variant bits so the value is a well-formed UUID.
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(b[:])
	return id
}
