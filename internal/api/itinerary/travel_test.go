package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joonbang02/tripweaver/internal/types"
)

func TestResolveMode(t *testing.T) {
	t.Run("explicit mode wins", func(t *testing.T) {
		inputs := types.GenerationInputs{Styles: []types.TravelStyle{types.StyleRoadTrip}}
		assert.Equal(t, types.ModeWalking, resolveMode(types.ModeWalking, inputs))
	})

	t.Run("road trip drives", func(t *testing.T) {
		inputs := types.GenerationInputs{RadiusKm: 2, Styles: []types.TravelStyle{types.StyleRoadTrip}}
		assert.Equal(t, types.ModeDriving, resolveMode(types.ModeAuto, inputs))
	})

	t.Run("compact radius walks", func(t *testing.T) {
		inputs := types.GenerationInputs{RadiusKm: 3}
		assert.Equal(t, types.ModeWalking, resolveMode(types.ModeAuto, inputs))
	})

	t.Run("otherwise transit", func(t *testing.T) {
		inputs := types.GenerationInputs{RadiusKm: 6}
		assert.Equal(t, types.ModeTransit, resolveMode(types.ModeAuto, inputs))
	})
}

func TestEstimateDay(t *testing.T) {
	tuning := DefaultTuning()

	day := []types.POI{
		poiAt("n/1", 35.100, 129.000),
		poiAt("n/2", 35.110, 129.010),
		poiAt("n/3", 35.125, 129.020),
	}

	t.Run("legs connect consecutive stops", func(t *testing.T) {
		est := tuning.estimateDay(1, day, types.ModeWalking, 1.0, false, false)
		require.Len(t, est.Legs, 2)
		assert.Equal(t, "n/1", est.Legs[0].From)
		assert.Equal(t, "n/2", est.Legs[0].To)
		assert.Equal(t, "n/2", est.Legs[1].From)
		assert.Equal(t, "n/3", est.Legs[1].To)
		assert.Greater(t, est.TotalDistanceKm, 0.0)
		assert.Greater(t, est.TotalMinutes, 0)
	})

	t.Run("walking takes longer than driving", func(t *testing.T) {
		walk := tuning.estimateDay(1, day, types.ModeWalking, 1.0, false, false)
		drive := tuning.estimateDay(1, day, types.ModeDriving, 1.0, false, false)
		assert.Greater(t, walk.TotalMinutes, drive.TotalMinutes)
		assert.InDelta(t, walk.TotalDistanceKm, drive.TotalDistanceKm, 0.01)
	})

	t.Run("denser areas are slower", func(t *testing.T) {
		sparse := tuning.estimateDay(1, day, types.ModeWalking, 0.5, false, false)
		dense := tuning.estimateDay(1, day, types.ModeWalking, 8.0, false, false)
		assert.Greater(t, dense.TotalMinutes, sparse.TotalMinutes)
	})

	t.Run("density slowdown bottoms out at the floor", func(t *testing.T) {
		dense := tuning.estimateDay(1, day, types.ModeWalking, 50.0, false, false)
		denser := tuning.estimateDay(1, day, types.ModeWalking, 500.0, false, false)
		assert.Equal(t, dense.TotalMinutes, denser.TotalMinutes)
	})

	t.Run("short legs shed overhead", func(t *testing.T) {
		near := []types.POI{
			poiAt("n/1", 35.1000, 129.000),
			poiAt("n/2", 35.1030, 129.000), // ~0.33 km
		}
		est := tuning.estimateDay(1, near, types.ModeWalking, 1.0, false, false)
		require.Len(t, est.Legs, 1)
		full := modeTable[types.ModeWalking].overheadMin
		assert.Less(t, est.Legs[0].DurationMin, est.Legs[0].DistanceKm/4.5*60+full)
	})

	t.Run("long transit legs pay a transfer surcharge", func(t *testing.T) {
		far := []types.POI{
			poiAt("n/1", 35.10, 129.00),
			poiAt("n/2", 35.20, 129.00), // ~11 km
		}
		transit := tuning.estimateDay(1, far, types.ModeTransit, 1.0, false, false)
		require.Len(t, transit.Legs, 1)
		params := modeTable[types.ModeTransit]
		speed := params.speedKmh * (tuning.DensitySpeedBase - tuning.DensitySpeedSlope)
		bare := transit.Legs[0].DistanceKm/speed*60 + params.overheadMin
		assert.Greater(t, transit.Legs[0].DurationMin, bare)
	})

	t.Run("return to base adds a closing leg", func(t *testing.T) {
		open := tuning.estimateDay(1, day, types.ModeWalking, 1.0, false, false)
		closed := tuning.estimateDay(1, day, types.ModeWalking, 1.0, true, false)
		require.Len(t, closed.Legs, len(open.Legs)+1)
		assert.Equal(t, "day base", closed.Legs[len(closed.Legs)-1].To)
		assert.Greater(t, closed.TotalMinutes, open.TotalMinutes)
	})

	t.Run("dwell counts stops not legs", func(t *testing.T) {
		est := tuning.estimateDay(1, day, types.ModeWalking, 1.0, false, true)
		assert.Equal(t, 135, est.DwellMinutes)
	})

	t.Run("empty day is a rest day", func(t *testing.T) {
		est := tuning.estimateDay(2, nil, types.ModeWalking, 1.0, true, true)
		assert.Equal(t, 2, est.Day)
		assert.Empty(t, est.Legs)
		assert.Zero(t, est.TotalMinutes)
		assert.Zero(t, est.DwellMinutes)
		assert.Contains(t, est.Note, "rest day")
	})

	t.Run("single stop has no travel", func(t *testing.T) {
		est := tuning.estimateDay(1, day[:1], types.ModeTransit, 1.0, true, true)
		assert.Empty(t, est.Legs)
		assert.Zero(t, est.TotalMinutes)
		assert.Equal(t, 45, est.DwellMinutes)
		assert.Contains(t, est.Note, "single stop")
	})
}

func TestTuningSelection(t *testing.T) {
	tuning := DefaultTuning()

	t.Run("cap follows radius", func(t *testing.T) {
		assert.Equal(t, 6, tuning.perDayCap(2))
		assert.Equal(t, 6, tuning.perDayCap(4))
		assert.Equal(t, 5, tuning.perDayCap(6))
		assert.Equal(t, 4, tuning.perDayCap(12))
	})

	t.Run("selection bounded by availability", func(t *testing.T) {
		assert.Equal(t, 18, tuning.selectionSize(40, 3, 3))
		assert.Equal(t, 10, tuning.selectionSize(10, 3, 3))
	})

	t.Run("selection never below the minimum when available", func(t *testing.T) {
		assert.Equal(t, 6, tuning.selectionSize(40, 1, 12))
	})
}
