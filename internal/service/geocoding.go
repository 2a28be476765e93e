package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/almanacai/almanac/internal/models"
	"github.com/rs/zerolog/log"
)

// GeocodingService resolves free-text place names against the
// Open-Meteo geocoding API.
type GeocodingService struct {
	baseURL string
	client  *http.Client
}

func NewGeocodingService(baseURL string, timeout time.Duration) *GeocodingService {
	return &GeocodingService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type geocodeMatch struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Country   string   `json:"country"`
}

type geocodeResponse struct {
	Results []geocodeMatch `json:"results"`
}

// Lookup returns the coordinates of the first-ranked match for cityName.
func (s *GeocodingService) Lookup(ctx context.Context, cityName string) (*models.Coordinates, error) {
	params := url.Values{
		"name":     {cityName},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	var payload geocodeResponse
	if err := getJSON(ctx, s.client, s.baseURL+"/search?"+params.Encode(), "geocoding", &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) == 0 {
		return nil, &NotFoundError{Upstream: "geocoding", Query: cityName}
	}

	top := payload.Results[0]
	if top.Latitude == nil || top.Longitude == nil {
		return nil, &SchemaError{Upstream: "geocoding", Reason: "result missing latitude/longitude"}
	}

	log.Debug().
		Str("city", cityName).
		Str("match", top.Name).
		Str("country", top.Country).
		Msg("geocoded")

	return &models.Coordinates{
		Latitude:  *top.Latitude,
		Longitude: *top.Longitude,
	}, nil
}

// TestConnection issues a minimal search to verify the upstream is reachable.
func (s *GeocodingService) TestConnection(ctx context.Context) error {
	var payload geocodeResponse
	return getJSON(ctx, s.client, s.baseURL+"/search?name=London&count=1&format=json", "geocoding", &payload)
}

// getJSON performs a GET and decodes the body, mapping transport and decode
// failures onto the shared taxonomy.
func getJSON(ctx context.Context, client *http.Client, rawURL, upstream string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &TransientError{Upstream: upstream, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return &TransientError{Upstream: upstream, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransientError{Upstream: upstream, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SchemaError{Upstream: upstream, Reason: "invalid JSON: " + err.Error()}
	}
	return nil
}
