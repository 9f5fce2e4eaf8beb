package geocode

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/joonbang02/tripweaver/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service resolves free-text place names into coordinates. Resolution never
// fails: network and parse errors surface as a "not found" result so the
// pipeline can degrade gracefully.
type Service interface {
	Resolve(ctx context.Context, query string) types.GeocodeResult
}

// Candidate score adjustments. A city-level interpretation must beat a
// country-level one even when the service ranks the country higher.
const (
	cityBoost        = 2.0
	adminBoost       = 0.6
	placeClassBoost  = 0.4
	countryPenalty   = -1.2
	defaultMaxMatches = 3
)

// countryNames is the denylist used for the advisory country-level warning on
// the chosen label. Containment is checked case-insensitively.
var countryNames = []string{
	"south korea", "north korea", "japan", "china", "taiwan", "thailand",
	"vietnam", "indonesia", "philippines", "india", "france", "germany",
	"italy", "spain", "portugal", "united kingdom", "ireland", "netherlands",
	"switzerland", "austria", "greece", "turkey", "united states", "canada",
	"mexico", "brazil", "argentina", "australia", "new zealand", "egypt",
	"morocco", "south africa",
}

type ServiceImpl struct {
	logger        *slog.Logger
	client        Client
	cache         *cache.Cache
	maxCandidates int
}

func NewServiceImpl(client Client, cacheTTL time.Duration, maxCandidates int, logger *slog.Logger) *ServiceImpl {
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxMatches
	}
	return &ServiceImpl{
		logger:        logger,
		client:        client,
		cache:         cache.New(cacheTTL, cacheTTL/2),
		maxCandidates: maxCandidates,
	}
}

// Resolve returns the best-scoring candidate for query. Results are memoized
// by exact input text since place coordinates do not change.
func (s *ServiceImpl) Resolve(ctx context.Context, query string) types.GeocodeResult {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("geocode.query", query),
	))
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		span.SetStatus(codes.Ok, "Empty query")
		return types.GeocodeResult{Found: false}
	}

	if cached, found := s.cache.Get(query); found {
		if result, ok := cached.(types.GeocodeResult); ok {
			span.AddEvent("cache hit")
			span.SetStatus(codes.Ok, "Served from cache")
			return result
		}
	}

	candidates, err := s.client.Search(ctx, query, s.maxCandidates)
	if err != nil {
		s.logger.WarnContext(ctx, "Geocoding lookup failed, treating as not found",
			slog.String("query", query), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "Degraded to not found")
		return types.GeocodeResult{Found: false}
	}
	if len(candidates) == 0 {
		s.logger.InfoContext(ctx, "Geocoding returned no candidates", slog.String("query", query))
		result := types.GeocodeResult{Found: false}
		s.cache.Set(query, result, cache.DefaultExpiration)
		return result
	}

	best := candidates[0]
	bestScore := scoreCandidate(best)
	for _, c := range candidates[1:] {
		if score := scoreCandidate(c); score > bestScore {
			best, bestScore = c, score
		}
	}

	result := types.GeocodeResult{
		Found:               true,
		Label:               best.DisplayName,
		Coord:               &types.Coordinate{Latitude: best.Lat, Longitude: best.Lon},
		CountryLevelWarning: readsAsCountry(best.DisplayName),
	}
	s.cache.Set(query, result, cache.DefaultExpiration)

	s.logger.DebugContext(ctx, "Resolved destination",
		slog.String("query", query),
		slog.String("label", best.DisplayName),
		slog.Float64("score", bestScore),
	)
	span.SetAttributes(attribute.String("geocode.label", best.DisplayName))
	span.SetStatus(codes.Ok, "Resolved")
	return result
}

// scoreCandidate combines the service's own importance with rule-based boosts
// so city-level interpretations win over broad administrative areas.
func scoreCandidate(c Candidate) float64 {
	score := c.Importance
	switch c.Type {
	case "city", "town":
		score += cityBoost
	case "administrative":
		score += adminBoost
	}
	if c.Class == "place" {
		score += placeClassBoost
	}
	if c.Type == "country" || c.Class == "boundary" {
		score += countryPenalty
	}
	return score
}

func readsAsCountry(label string) bool {
	lower := strings.ToLower(label)
	for _, name := range countryNames {
		// A trailing ", <country>" is normal for city labels; only warn when
		// the label is essentially just the country.
		if lower == name || strings.HasPrefix(lower, name+",") {
			return true
		}
	}
	return false
}
