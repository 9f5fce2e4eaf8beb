package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Candidate is one typed match from the geocoding service. Nominatim returns
// lat/lon as strings; they are parsed at this boundary so nothing loosely
// typed travels inward.
type Candidate struct {
	PlaceID     int64
	DisplayName string
	Lat         float64
	Lon         float64
	Class       string
	Type        string
	Importance  float64
}

// Client is the upstream geocoding contract. Implementations must treat
// malformed payloads as errors so the service can degrade to "not found".
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}

type nominatimResult struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// NominatimClient queries a Nominatim-compatible search endpoint.
type NominatimClient struct {
	baseURL string
	client  *http.Client
}

func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

var _ Client = (*NominatimClient)(nil)

func (c *NominatimClient) Search(ctx context.Context, query string, limit int) ([]Candidate, error) {
	apiURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "tripweaver/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("geocoder returned malformed payload: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, Candidate{
			PlaceID:     r.PlaceID,
			DisplayName: r.DisplayName,
			Lat:         lat,
			Lon:         lon,
			Class:       r.Class,
			Type:        r.Type,
			Importance:  r.Importance,
		})
	}
	return candidates, nil
}
