package itinerary

import (
	"math"

	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

// modeParams is the base speed/overhead model per movement mode.
type modeParams struct {
	speedKmh    float64
	overheadMin float64
}

var modeTable = map[types.TravelMode]modeParams{
	types.ModeWalking: {speedKmh: 4.5, overheadMin: 3.0},
	types.ModeTransit: {speedKmh: 18.0, overheadMin: 10.0},
	types.ModeDriving: {speedKmh: 28.0, overheadMin: 8.0},
}

// resolveMode applies the automatic mode selection: driving for road trips,
// walking for compact areas, transit otherwise.
func resolveMode(mode types.TravelMode, inputs types.GenerationInputs) types.TravelMode {
	if mode != types.ModeAuto {
		return mode
	}
	switch {
	case inputs.HasStyle(types.StyleRoadTrip):
		return types.ModeDriving
	case inputs.RadiusKm <= 3:
		return types.ModeWalking
	default:
		return types.ModeTransit
	}
}

// estimateDay converts an ordered day of POIs into leg-by-leg travel. The
// estimator never fails; zero or one point yields zero travel with an
// advisory note. pointDensity is pointCount/radiusKm for the whole selection
// and slows the effective speed in dense areas.
func (t Tuning) estimateDay(day int, pois []types.POI, mode types.TravelMode, pointDensity float64, returnToBase, includeDwell bool) types.DayTravelEstimate {
	est := types.DayTravelEstimate{Day: day, Mode: mode, Legs: []types.Leg{}}

	if includeDwell {
		est.DwellMinutes = int(math.Round(t.DwellMinutesPerPOI * float64(len(pois))))
	}

	switch len(pois) {
	case 0:
		est.Note = "no stops planned; rest day"
		return est
	case 1:
		est.Note = "single stop; no travel between points"
		return est
	}

	params := modeTable[mode]
	speed := params.speedKmh * math.Max(t.DensitySpeedFloor, t.DensitySpeedBase-t.DensitySpeedSlope*pointDensity)

	var totalKm, totalMin float64
	addLeg := func(from, to string, distKm float64) {
		overhead := params.overheadMin
		if distKm < t.ShortLegKm {
			overhead *= t.ShortLegOverhead
		}
		if mode == types.ModeTransit && distKm > t.LongTransitLegKm {
			overhead += t.LongTransitExtraMin
		}
		durationMin := distKm/speed*60 + overhead
		est.Legs = append(est.Legs, types.Leg{
			From:        from,
			To:          to,
			DistanceKm:  distKm,
			DurationMin: durationMin,
		})
		totalKm += distKm
		totalMin += durationMin
	}

	for i := 1; i < len(pois); i++ {
		addLeg(pois[i-1].Name, pois[i].Name,
			geo.Haversine(pois[i-1].Coord, pois[i].Coord))
	}

	if returnToBase {
		coords := make([]types.Coordinate, len(pois))
		for i, p := range pois {
			coords[i] = p.Coord
		}
		centroid := geo.Centroid(coords)
		last := pois[len(pois)-1]
		addLeg(last.Name, "day base", geo.Haversine(last.Coord, centroid))
	}

	est.TotalDistanceKm = math.Round(totalKm*100) / 100
	est.TotalMinutes = int(math.Round(totalMin))
	return est
}
