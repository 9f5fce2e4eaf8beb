package poi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/joonbang02/tripweaver/app/observability/metrics"
	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the acquisition contract: a ranked, deduplicated POI list for a
// destination. FetchNearby never returns an error; upstream failure degrades
// to the last memoized result for the destination, or an empty list.
type Service interface {
	FetchNearby(ctx context.Context, center types.Coordinate, radiusKm float64, limit int) []types.POI
}

type ServiceImpl struct {
	logger *slog.Logger
	client Client
	cache  *cache.Cache
}

func NewServiceImpl(client Client, cacheTTL time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		client: client,
		cache:  cache.New(cacheTTL, time.Hour),
	}
}

func fetchCacheKey(center types.Coordinate, radiusKm float64, limit int) string {
	return fmt.Sprintf("poi:%.5f:%.5f:%.2f:%d", center.Latitude, center.Longitude, radiusKm, limit)
}

// lastGoodKey ignores radius/limit so a parameter tweak can still reuse the
// most recent successful fetch for the destination when every mirror is down.
func lastGoodKey(center types.Coordinate) string {
	return fmt.Sprintf("lastgood:%.5f:%.5f", center.Latitude, center.Longitude)
}

func (s *ServiceImpl) FetchNearby(ctx context.Context, center types.Coordinate, radiusKm float64, limit int) []types.POI {
	ctx, span := otel.Tracer("POIService").Start(ctx, "FetchNearby", trace.WithAttributes(
		attribute.Float64("poi.radius_km", radiusKm),
		attribute.Int("poi.limit", limit),
	))
	defer span.End()

	key := fetchCacheKey(center, radiusKm, limit)
	if cached, found := s.cache.Get(key); found {
		if pois, ok := cached.([]types.POI); ok {
			metrics.Get().CacheHitsTotal.Add(ctx, 1)
			span.SetStatus(codes.Ok, "Served from cache")
			return pois
		}
	}

	start := time.Now()
	elements, err := s.client.QueryBox(ctx, geo.BoxAround(center, radiusKm))
	metrics.Get().UpstreamFetchSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		s.logger.WarnContext(ctx, "POI acquisition failed on every mirror",
			slog.Any("error", err))
		span.RecordError(err)
		metrics.Get().UpstreamErrorsTotal.Add(ctx, 1)

		// Fall back to the most recent successful result for this destination.
		if cached, found := s.cache.Get(lastGoodKey(center)); found {
			if pois, ok := cached.([]types.POI); ok {
				span.SetStatus(codes.Ok, "Degraded to last good result")
				return pois
			}
		}
		span.SetStatus(codes.Ok, "Degraded to empty list")
		return []types.POI{}
	}

	pois := make([]types.POI, 0, len(elements))
	for _, el := range elements {
		if p, ok := toPOI(el); ok {
			pois = append(pois, p)
		}
	}
	pois = rank(dedupe(pois), center, radiusKm, limit)

	s.cache.Set(key, pois, cache.DefaultExpiration)
	s.cache.Set(lastGoodKey(center), pois, cache.NoExpiration)

	s.logger.DebugContext(ctx, "POI acquisition complete",
		slog.Int("raw_elements", len(elements)),
		slog.Int("pois", len(pois)),
	)
	span.SetAttributes(attribute.Int("poi.count", len(pois)))
	span.SetStatus(codes.Ok, "Fetched")
	return pois
}
