package geo

import (
	"math"

	"github.com/Blank129/BookingCar/internal/core/domain"
)

const (
	EarthRadiusKm = 6371.0

	// MinBillableKm guarantees any non-zero trip has a non-zero fare.
	MinBillableKm = 1.0
)

// DistanceKm returns the great-circle distance between two points,
// floored at MinBillableKm. Out-of-range coordinates are not validated.
func DistanceKm(a, b domain.Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Max(EarthRadiusKm*c, MinBillableKm)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
