package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Blank129/BookingCar/internal/core/domain"
)

// NominatimClient resolves free-text queries against a nominatim-style
// geocoding API, biased to Vietnamese results like the app's search box.
type NominatimClient struct {
	BaseURL string
	Client  *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{BaseURL: baseURL, Client: &http.Client{Timeout: 5 * time.Second}}
}

type nominatimResult struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Name        string      `json:"name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

func (c *NominatimClient) Search(ctx context.Context, query string) ([]domain.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "8")
	params.Set("countrycodes", "vn")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "vi")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim search: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim search: decode: %w", err)
	}

	locations := make([]domain.Location, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		name := r.Name
		if name == "" {
			name = r.DisplayName
		}
		locations = append(locations, domain.Location{
			ID:      r.PlaceID.String(),
			Name:    name,
			Address: r.DisplayName,
			Coord:   domain.Coordinate{Lat: lat, Lng: lng},
		})
	}

	return locations, nil
}
