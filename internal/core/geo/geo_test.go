package geo

import (
	"testing"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	a := domain.Coordinate{Lat: 10.8181, Lng: 106.6517}
	b := domain.Coordinate{Lat: 10.7953, Lng: 106.7212}

	assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
}

func TestDistanceKm_FloorAppliedAtZero(t *testing.T) {
	a := domain.Coordinate{Lat: 10.7769, Lng: 106.7009}

	assert.Equal(t, MinBillableKm, DistanceKm(a, a))
}

func TestDistanceKm_FloorAppliedToShortTrips(t *testing.T) {
	// Bitexco Tower to the Opera House, a few hundred meters apart.
	a := domain.Coordinate{Lat: 10.7717, Lng: 106.7041}
	b := domain.Coordinate{Lat: 10.7769, Lng: 106.7009}

	assert.Equal(t, MinBillableKm, DistanceKm(a, b))
}

func TestDistanceKm_AirportToLandmark81(t *testing.T) {
	airport := domain.Coordinate{Lat: 10.8181, Lng: 106.6517}
	landmark := domain.Coordinate{Lat: 10.7953, Lng: 106.7212}

	d := DistanceKm(airport, landmark)
	assert.InDelta(t, 8.0, d, 0.1)
}
