package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joonbang02/tripweaver/internal/geo"
)

// Element is one point-like entity returned by the map data service. Way
// elements carry their computed center instead of a node position.
type Element struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

// Center holds the computed centre of a way element.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassResponse struct {
	Elements []Element `json:"elements"`
}

// Client fetches raw map elements for a bounding box. Implementations own
// mirror selection and retries; a returned error means every source failed.
type Client interface {
	QueryBox(ctx context.Context, box geo.BoundingBox) ([]Element, error)
}

// MirrorClient queries an ordered list of Overpass mirror endpoints. Each
// mirror is retried with exponential backoff before falling through to the
// next one.
type MirrorClient struct {
	logger        *slog.Logger
	mirrors       []string
	maxRetries    int
	retryBaseWait time.Duration
	client        *http.Client
}

var _ Client = (*MirrorClient)(nil)

func NewMirrorClient(mirrors []string, maxRetries int, retryBaseWait time.Duration, timeout time.Duration, logger *slog.Logger) *MirrorClient {
	if retryBaseWait <= 0 {
		retryBaseWait = 500 * time.Millisecond
	}
	return &MirrorClient{
		logger:        logger,
		mirrors:       mirrors,
		maxRetries:    maxRetries,
		retryBaseWait: retryBaseWait,
		client:        &http.Client{Timeout: timeout},
	}
}

// buildQuery assembles the fixed category filter over the bounding box. Only
// named point-like entities are requested; way results carry "out center".
func buildQuery(box geo.BoundingBox) string {
	bbox := fmt.Sprintf("%f,%f,%f,%f", box.South, box.West, box.North, box.East)
	selectors := []string{
		`node["tourism"~"attraction|museum|gallery|viewpoint"]["name"]`,
		`node["leisure"~"park|garden"]["name"]`,
		`node["natural"~"peak|beach"]["name"]`,
		`node["historic"~"monument|memorial|castle|ruins"]["name"]`,
		`node["amenity"~"restaurant|cafe|bar|pub|fast_food|marketplace"]["name"]`,
	}
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, sel := range selectors {
		fmt.Fprintf(&b, "%s(%s);", sel, bbox)
	}
	b.WriteString(");out body;")
	return b.String()
}

func (c *MirrorClient) QueryBox(ctx context.Context, box geo.BoundingBox) ([]Element, error) {
	query := buildQuery(box)

	var lastErr error
	for _, mirror := range c.mirrors {
		for attempt := 0; attempt <= c.maxRetries; attempt++ {
			if attempt > 0 {
				wait := c.retryBaseWait << (attempt - 1)
				c.logger.DebugContext(ctx, "Retrying mirror after backoff",
					slog.String("mirror", mirror),
					slog.Int("attempt", attempt),
					slog.Duration("wait", wait),
				)
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(wait):
				}
			}

			elements, err := c.queryOnce(ctx, mirror, query)
			if err == nil {
				return elements, nil
			}
			lastErr = err
			c.logger.WarnContext(ctx, "Mirror query failed",
				slog.String("mirror", mirror),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("all mirrors failed: %w", lastErr)
}

func (c *MirrorClient) queryOnce(ctx context.Context, mirror, query string) ([]Element, error) {
	body := strings.NewReader("data=" + url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mirror returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed overpassResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		// Malformed payloads count as "no results from this mirror".
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	return parsed.Elements, nil
}
