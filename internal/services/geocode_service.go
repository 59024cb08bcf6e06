package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"outreach-backend/internal/config"
)

// GeocodeService resolves coordinates into a human-readable place name via
// a Nominatim-compatible service. Geocoding is best effort: any failure
// falls back to the raw coordinates so a submission is never blocked on it.
type GeocodeService struct {
	baseURL string
	client  *http.Client
}

func NewGeocodeService(cfg *config.Config) *GeocodeService {
	timeout := time.Duration(cfg.Geocode.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GeocodeService{
		baseURL: cfg.Geocode.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Suburb  string `json:"suburb"`
		Village string `json:"village"`
		Town    string `json:"town"`
		City    string `json:"city"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

// Reverse resolves lat/lon to a short locality string. On any failure it
// returns the coordinates formatted to five decimals and logs the cause.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("%.5f, %.5f", lat, lon)

	endpoint := fmt.Sprintf("%s/reverse?%s", s.baseURL, url.Values{
		"lat":    {fmt.Sprintf("%f", lat)},
		"lon":    {fmt.Sprintf("%f", lon)},
		"format": {"json"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallback
	}
	// Nominatim's usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "outreach-backend/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Geocode] Reverse lookup failed: %v", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Geocode] Reverse lookup returned status %d", resp.StatusCode)
		return fallback
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[Geocode] Failed to decode response: %v", err)
		return fallback
	}

	locality := firstNonEmpty(
		result.Address.Suburb, result.Address.Village, result.Address.Town,
		result.Address.City, result.Address.County,
	)
	switch {
	case locality != "" && result.Address.State != "":
		return locality + ", " + result.Address.State
	case locality != "":
		return locality
	case result.DisplayName != "":
		return result.DisplayName
	default:
		return fallback
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
