package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/joonbang02/tripweaver/app/observability/metrics"
	"github.com/joonbang02/tripweaver/internal/api/geocode"
	"github.com/joonbang02/tripweaver/internal/api/hotel"
	"github.com/joonbang02/tripweaver/internal/api/poi"
	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service runs the full generation pipeline: resolve, acquire, score,
// cluster, sequence, estimate, with hotel ranking alongside. It always
// produces a bundle; upstream trouble only degrades individual stages.
type Service interface {
	Generate(ctx context.Context, inputs types.GenerationInputs) (*types.ItineraryBundle, error)
}

type ServiceImpl struct {
	logger      *slog.Logger
	geocoder    geocode.Service
	poiService  poi.Service
	hotels      hotel.Service
	tuning      Tuning
	bundleCache *cache.Cache
}

func NewServiceImpl(geocoder geocode.Service, poiService poi.Service, hotels hotel.Service, tuning Tuning, bundleTTL time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		geocoder:    geocoder,
		poiService:  poiService,
		hotels:      hotels,
		tuning:      tuning,
		bundleCache: cache.New(bundleTTL, bundleTTL/2),
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, inputs types.GenerationInputs) (*types.ItineraryBundle, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("itinerary.destination", inputs.Destination),
		attribute.Int("itinerary.days", inputs.Days),
	))
	defer span.End()

	inputs.Normalize()
	sig := inputs.Signature()
	span.SetAttributes(attribute.String("itinerary.signature", sig))

	if cached, found := s.bundleCache.Get(sig); found {
		if bundle, ok := cached.(*types.ItineraryBundle); ok {
			metrics.Get().CacheHitsTotal.Add(ctx, 1)
			s.logger.InfoContext(ctx, "Returning memoized itinerary bundle", slog.String("signature", sig))
			span.SetStatus(codes.Ok, "Served from cache")
			return bundle, nil
		}
	}

	start := time.Now()

	dest := s.geocoder.Resolve(ctx, inputs.Destination)

	var pois []types.POI
	if dest.Found {
		pois = s.poiService.FetchNearby(ctx, *dest.Coord, inputs.RadiusKm, inputs.MaxPOIs)
	}

	scored := sortByPreference(pois, inputs.Styles)
	selection := scored[:s.tuning.selectionSize(len(scored), inputs.Days, inputs.RadiusKm)]

	buckets := clusterIntoDays(selection, inputs.Days, s.tuning.ClusterMaxRounds)
	mode := resolveMode(inputs.Mode, inputs)
	density := float64(len(selection)) / inputs.RadiusKm

	estimates := make([]types.DayTravelEstimate, len(buckets))
	var hotels []types.HotelCandidate

	// Days are independent after clustering, and the hotel ranking only needs
	// the trip centroid, so everything fans out together.
	g, gctx := errgroup.WithContext(ctx)
	for i := range buckets {
		i := i
		g.Go(func() error {
			buckets[i].POIs = sequenceDay(buckets[i].POIs)
			estimates[i] = s.tuning.estimateDay(buckets[i].Day, buckets[i].POIs, mode, density,
				inputs.ReturnToBase, inputs.IncludeDwell)
			return nil
		})
	}
	if inputs.IncludeHotels {
		g.Go(func() error {
			center := tripCenter(selection, dest)
			hotels = s.hotels.Rank(gctx, center, inputs.RadiusKm, inputs.Styles, inputs.HotelPriceCeiling)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("itinerary generation interrupted: %w", err)
	}

	if inputs.RecenterOnHotel && len(hotels) > 0 {
		s.recenterOnHotel(buckets, estimates, hotels[0], mode, density, inputs)
	}

	bundle := &types.ItineraryBundle{
		ID:          uuid.New(),
		Signature:   sig,
		Destination: dest,
		POIs:        selection,
		Days:        buckets,
		Estimates:   estimates,
		Hotels:      hotels,
		Notes:       bundleNotes(dest, selection),
		GeneratedAt: time.Now().UTC(),
	}
	s.bundleCache.Set(sig, bundle, cache.DefaultExpiration)

	metrics.Get().GenerationsTotal.Add(ctx, 1)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "Itinerary generated",
		slog.String("signature", sig),
		slog.Int("pois", len(selection)),
		slog.Int("days", len(buckets)),
		slog.Duration("elapsed", time.Since(start)),
	)
	span.SetStatus(codes.Ok, "Generated")
	return bundle, nil
}

// recenterOnHotel re-sorts every day by distance from the selected hotel and
// recomputes the travel estimates.
func (s *ServiceImpl) recenterOnHotel(buckets []types.DayBucket, estimates []types.DayTravelEstimate, top types.HotelCandidate, mode types.TravelMode, density float64, inputs types.GenerationInputs) {
	for i := range buckets {
		buckets[i].POIs = sortByDistanceFrom(top.Coord, buckets[i].POIs)
		estimates[i] = s.tuning.estimateDay(buckets[i].Day, buckets[i].POIs, mode, density,
			inputs.ReturnToBase, inputs.IncludeDwell)
	}
}

func tripCenter(selection []types.POI, dest types.GeocodeResult) types.Coordinate {
	if len(selection) == 0 {
		if dest.Coord != nil {
			return *dest.Coord
		}
		return types.Coordinate{}
	}
	coords := make([]types.Coordinate, len(selection))
	for i, p := range selection {
		coords[i] = p.Coord
	}
	return geo.Centroid(coords)
}

func bundleNotes(dest types.GeocodeResult, selection []types.POI) []string {
	var notes []string
	if !dest.Found {
		notes = append(notes, "destination could not be resolved; try a more specific place name")
	}
	if dest.CountryLevelWarning {
		notes = append(notes, "destination resolved to a country-level area; results may be broad")
	}
	if dest.Found && len(selection) == 0 {
		notes = append(notes, "no points of interest found near the destination")
	}
	return notes
}

func sortByDistanceFrom(origin types.Coordinate, pois []types.POI) []types.POI {
	sorted := make([]types.POI, len(pois))
	copy(sorted, pois)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			if geo.Haversine(origin, sorted[j].Coord) < geo.Haversine(origin, sorted[j-1].Coord) {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			} else {
				break
			}
		}
	}
	return sorted
}
