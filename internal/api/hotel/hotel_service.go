package hotel

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service ranks candidate lodgings around the trip centroid. Rank never
// fails: live inventory trouble falls back to the built-in generator.
type Service interface {
	Rank(ctx context.Context, center types.Coordinate, radiusKm float64, styles []types.TravelStyle, priceCeiling float64) []types.HotelCandidate
}

// Fit score terms.
const (
	proximityCutoffKm = 3.5
	proximityWeight   = 0.7
	starWeight        = 0.25
	withinBudgetBonus = 0.6
	overBudgetPenalty = -0.8
	relaxStarBonus    = 0.5
	roadTripParkBonus = 0.4
)

type ServiceImpl struct {
	logger    *slog.Logger
	inventory InventoryClient // nil when the live inventory is disabled
}

func NewServiceImpl(inventory InventoryClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		inventory: inventory,
	}
}

func (s *ServiceImpl) Rank(ctx context.Context, center types.Coordinate, radiusKm float64, styles []types.TravelStyle, priceCeiling float64) []types.HotelCandidate {
	ctx, span := otel.Tracer("HotelService").Start(ctx, "Rank", trace.WithAttributes(
		attribute.Float64("hotel.radius_km", radiusKm),
	))
	defer span.End()

	candidates := s.fetchCandidates(ctx, center, radiusKm)
	for i := range candidates {
		candidates[i].DistanceKm = geo.Haversine(center, candidates[i].Coord)
		candidates[i].FitScore = fitScore(candidates[i], styles, priceCeiling)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FitScore > candidates[j].FitScore
	})
	if len(candidates) > 0 {
		candidates[0].Selected = true
	}

	span.SetAttributes(attribute.Int("hotel.count", len(candidates)))
	span.SetStatus(codes.Ok, "Ranked")
	return candidates
}

func (s *ServiceImpl) fetchCandidates(ctx context.Context, center types.Coordinate, radiusKm float64) []types.HotelCandidate {
	if s.inventory == nil {
		return GenerateCandidates(center)
	}
	candidates, err := s.inventory.FetchCandidates(ctx, center, radiusKm)
	if err != nil || len(candidates) == 0 {
		if err != nil {
			s.logger.WarnContext(ctx, "Hotel inventory unavailable, using built-in generator",
				slog.Any("error", err))
		}
		return GenerateCandidates(center)
	}
	return candidates
}

// fitScore combines proximity, star rating, price fit and style alignment.
func fitScore(h types.HotelCandidate, styles []types.TravelStyle, priceCeiling float64) float64 {
	score := math.Max(0, proximityCutoffKm-h.DistanceKm) * proximityWeight
	score += float64(h.Stars) * starWeight

	if priceCeiling > 0 {
		if h.NightlyPrice <= priceCeiling {
			score += withinBudgetBonus
		} else {
			score += overBudgetPenalty
		}
	}

	for _, style := range styles {
		switch style {
		case types.StyleRelaxation:
			if h.Stars >= 4 {
				score += relaxStarBonus
			}
		case types.StyleRoadTrip:
			if h.HasAmenity("parking") {
				score += roadTripParkBonus
			}
		}
	}
	return score
}
