package port

import (
	"context"

	"github.com/Blank129/BookingCar/internal/core/domain"
)

// Geocoder resolves free-text queries to candidate locations.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Location, error)
}

// Locator reports the device position. Failures map to
// domain.ErrPermissionDenied, domain.ErrPositionUnavailable or
// domain.ErrLocationTimeout.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}

// Route is a server-computed driving route between two points.
type Route struct {
	DistanceKm float64
	Geometry   []domain.Coordinate
}

type RouteService interface {
	Route(ctx context.Context, from, to domain.Coordinate) (Route, error)
}

// DriverPresence tracks which drivers are online and where.
type DriverPresence interface {
	SetOnline(ctx context.Context, driverID string, c domain.Coordinate) error
	SetOffline(ctx context.Context, driverID string) error
	NearbyDrivers(ctx context.Context, c domain.Coordinate, radiusKm float64) ([]string, error)
}
