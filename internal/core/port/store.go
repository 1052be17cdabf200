package port

import (
	"context"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/google/uuid"
)

type CreateBookingParams struct {
	UserID      uuid.UUID
	VehicleID   int
	Pickup      domain.Location
	Destination domain.Location
	DistanceKm  float64
	TotalPrice  int64
}

type BookingStore interface {
	CreateBooking(ctx context.Context, arg CreateBookingParams) (domain.Booking, error)
	ActiveBookingByUser(ctx context.Context, userID uuid.UUID) (domain.Booking, error)
	OpenBookingsForDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error)
	CompletedBookingsForDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error)
	AssignDriver(ctx context.Context, bookingID, driverID uuid.UUID) (domain.Booking, error)
	RecordRejection(ctx context.Context, bookingID, driverID uuid.UUID) error
	SetBookingStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error
	CompleteBooking(ctx context.Context, bookingID, driverID uuid.UUID) error
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
}

type VehicleStore interface {
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type DriverStore interface {
	GetDriverByEmail(ctx context.Context, email string) (domain.Driver, error)
	SetDriverStatus(ctx context.Context, driverID uuid.UUID, status domain.DriverStatus) error
	DriverEarnings(ctx context.Context, driverID uuid.UUID) (domain.EarningsSummary, error)
}
