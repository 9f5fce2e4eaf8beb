package hotel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joonbang02/tripweaver/internal/types"
)

// InventoryClient is the live lodging inventory contract. Any failure
// (authentication, network, malformed response) is returned as an error; the
// service falls back to the deterministic generator and never propagates it.
type InventoryClient interface {
	FetchCandidates(ctx context.Context, center types.Coordinate, radiusKm float64) ([]types.HotelCandidate, error)
}

type inventoryRecord struct {
	Name         string   `json:"name"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Stars        int      `json:"stars"`
	NightlyPrice float64  `json:"nightly_price"`
	Amenities    []string `json:"amenities"`
}

// HTTPInventoryClient queries a hotel inventory HTTP service.
type HTTPInventoryClient struct {
	baseURL string
	client  *http.Client
}

var _ InventoryClient = (*HTTPInventoryClient)(nil)

func NewHTTPInventoryClient(baseURL string, timeout time.Duration) *HTTPInventoryClient {
	return &HTTPInventoryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPInventoryClient) FetchCandidates(ctx context.Context, center types.Coordinate, radiusKm float64) ([]types.HotelCandidate, error) {
	apiURL := fmt.Sprintf("%s/v1/hotels?lat=%f&lon=%f&radius_km=%f",
		c.baseURL, center.Latitude, center.Longitude, radiusKm)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var records []inventoryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("inventory returned malformed payload: %w", err)
	}

	candidates := make([]types.HotelCandidate, 0, len(records))
	for _, r := range records {
		if r.Name == "" || r.Stars < 1 || r.Stars > 5 {
			continue
		}
		candidates = append(candidates, types.HotelCandidate{
			ID:           uuid.New(),
			Name:         r.Name,
			Coord:        types.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
			Stars:        r.Stars,
			NightlyPrice: r.NightlyPrice,
			Amenities:    r.Amenities,
		})
	}
	return candidates, nil
}
