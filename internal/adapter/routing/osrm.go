package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
)

// OSRMClient performs driving-route lookups against an OSRM HTTP server.
type OSRMClient struct {
	Endpoint string
	Client   *http.Client
}

func NewOSRMClient(endpoint string) *OSRMClient {
	return &OSRMClient{Endpoint: endpoint, Client: &http.Client{Timeout: 4 * time.Second}}
}

// Route queries /route/v1/driving with full geometry so the path can be
// drawn; distance comes back in meters.
func (o *OSRMClient) Route(ctx context.Context, from, to domain.Coordinate) (port.Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		o.Endpoint, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.Route{}, err
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return port.Route{}, err
	}
	defer resp.Body.Close()

	var out struct {
		Routes []struct {
			Distance float64 `json:"distance"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"routes"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return port.Route{}, fmt.Errorf("osrm route: decode: %w", err)
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return port.Route{}, fmt.Errorf("osrm no route: %v", out.Code)
	}

	best := out.Routes[0]
	geometry := make([]domain.Coordinate, 0, len(best.Geometry.Coordinates))
	for _, c := range best.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		// GeoJSON order is [lng, lat]
		geometry = append(geometry, domain.Coordinate{Lat: c[1], Lng: c[0]})
	}

	return port.Route{DistanceKm: best.Distance / 1000.0, Geometry: geometry}, nil
}
