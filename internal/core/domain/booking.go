package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingPhase string

const (
	PhaseLocationEntry    BookingPhase = "LOCATION_ENTRY"
	PhaseVehicleSelection BookingPhase = "VEHICLE_SELECTION"
	PhaseConfirmation     BookingPhase = "CONFIRMATION"
)

type TripStatus string

const (
	StatusSearching TripStatus = "SEARCHING"
	StatusFound     TripStatus = "FOUND"
	StatusArriving  TripStatus = "ARRIVING"
	StatusArrived   TripStatus = "ARRIVED"
)

var tripStatusRank = map[TripStatus]int{
	StatusSearching: 0,
	StatusFound:     1,
	StatusArriving:  2,
	StatusArrived:   3,
}

// Rank orders statuses for the forward-only progression check.
func (s TripStatus) Rank() int {
	return tripStatusRank[s]
}

func (s TripStatus) Before(o TripStatus) bool {
	return s.Rank() < o.Rank()
}

type BookingStatus string

const (
	BookingPending        BookingStatus = "PENDING"
	BookingDriverAssigned BookingStatus = "DRIVER_ASSIGNED"
	BookingCompleted      BookingStatus = "COMPLETED"
	BookingCancelled      BookingStatus = "CANCELLED"
)

// DriverInfo is the assigned-driver detail shown to the rider.
type DriverInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PlateLicense string    `json:"plate_license"`
	Rating       float64   `json:"rating"`
}

// Booking is a persisted trip record.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	VehicleID   int           `json:"vehicle_id"`
	Pickup      Location      `json:"pickup"`
	Destination Location      `json:"destination"`
	DistanceKm  float64       `json:"distance_km"`
	TotalPrice  int64         `json:"total_price"`
	Status      BookingStatus `json:"status"`
	Driver      *DriverInfo   `json:"driver,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (b *Booking) HasDriver() bool {
	return b.Driver != nil
}

// EarningsSummary aggregates a driver's completed-trip income.
type EarningsSummary struct {
	Today      int64 `json:"today"`
	Week       int64 `json:"week"`
	Month      int64 `json:"month"`
	TripsToday int   `json:"trips_today"`
}
