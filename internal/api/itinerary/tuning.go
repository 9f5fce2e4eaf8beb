package itinerary

// Tuning holds the heuristic constants of the planner. The defaults mirror
// the shipped config.yml; the container overrides them from configuration so
// they can be adjusted without a rebuild.
type Tuning struct {
	PerDayCapDense  int
	PerDayCapMedium int
	PerDayCapSparse int
	DenseRadiusKm   float64
	MediumRadiusKm  float64
	MinSelection    int

	ClusterMaxRounds int

	DensitySpeedFloor float64
	DensitySpeedBase  float64
	DensitySpeedSlope float64

	ShortLegKm          float64
	ShortLegOverhead    float64
	LongTransitLegKm    float64
	LongTransitExtraMin float64

	DwellMinutesPerPOI float64
}

func DefaultTuning() Tuning {
	return Tuning{
		PerDayCapDense:      6,
		PerDayCapMedium:     5,
		PerDayCapSparse:     4,
		DenseRadiusKm:       4,
		MediumRadiusKm:      8,
		MinSelection:        6,
		ClusterMaxRounds:    12,
		DensitySpeedFloor:   0.72,
		DensitySpeedBase:    1.15,
		DensitySpeedSlope:   0.06,
		ShortLegKm:          0.8,
		ShortLegOverhead:    0.6,
		LongTransitLegKm:    8,
		LongTransitExtraMin: 5,
		DwellMinutesPerPOI:  45,
	}
}

// perDayCap shrinks as the search radius grows: denser small areas support
// more stops per day.
func (t Tuning) perDayCap(radiusKm float64) int {
	switch {
	case radiusKm <= t.DenseRadiusKm:
		return t.PerDayCapDense
	case radiusKm <= t.MediumRadiusKm:
		return t.PerDayCapMedium
	default:
		return t.PerDayCapSparse
	}
}

// selectionSize is the number of top-scored POIs fed into clustering.
func (t Tuning) selectionSize(total, days int, radiusKm float64) int {
	n := days * t.perDayCap(radiusKm)
	if n < t.MinSelection {
		n = t.MinSelection
	}
	if n > total {
		n = total
	}
	return n
}
