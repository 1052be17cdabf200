package service

import (
	"context"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DriverService backs the driver dashboard: availability toggling, trip
// request handling and earnings.
type DriverService struct {
	bookings port.BookingStore
	drivers  port.DriverStore
	presence port.DriverPresence
	notifier port.Notifier
	logger   *zap.Logger
}

func NewDriverService(bookings port.BookingStore, drivers port.DriverStore, presence port.DriverPresence, notifier port.Notifier, logger *zap.Logger) *DriverService {
	return &DriverService{
		bookings: bookings,
		drivers:  drivers,
		presence: presence,
		notifier: notifier,
		logger:   logger,
	}
}

// GoOnline registers the driver in the presence index so trip requests
// reach them.
func (s *DriverService) GoOnline(ctx context.Context, driverID uuid.UUID, pos domain.Coordinate) error {
	if err := s.drivers.SetDriverStatus(ctx, driverID, domain.DriverStatusOnline); err != nil {
		return err
	}
	if err := s.presence.SetOnline(ctx, driverID.String(), pos); err != nil {
		return err
	}
	observability.DriversOnline.Inc()
	return nil
}

func (s *DriverService) GoOffline(ctx context.Context, driverID uuid.UUID) error {
	if err := s.drivers.SetDriverStatus(ctx, driverID, domain.DriverStatusOffline); err != nil {
		return err
	}
	if err := s.presence.SetOffline(ctx, driverID.String()); err != nil {
		return err
	}
	observability.DriversOnline.Dec()
	return nil
}

// OpenRequests lists pending bookings for the driver's vehicle class,
// excluding ones this driver already rejected.
func (s *DriverService) OpenRequests(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.OpenBookingsForDriver(ctx, driverID)
}

// Accept assigns the driver to a pending booking and notifies the rider.
// Returns domain.ErrInvalidTransition when another driver got there first.
func (s *DriverService) Accept(ctx context.Context, driverID, bookingID uuid.UUID) error {
	booking, err := s.bookings.AssignDriver(ctx, bookingID, driverID)
	if err != nil {
		return err
	}
	if err := s.drivers.SetDriverStatus(ctx, driverID, domain.DriverStatusEnRoute); err != nil {
		s.logger.Warn("driver status update after accept failed", zap.Error(err))
	}

	s.notifier.NotifyBookingChanged(booking.UserID.String())
	return nil
}

// Reject records the rejection so the request no longer appears in this
// driver's list. The booking stays open for other drivers.
func (s *DriverService) Reject(ctx context.Context, driverID, bookingID uuid.UUID) error {
	return s.bookings.RecordRejection(ctx, bookingID, driverID)
}

// Complete finishes the trip and returns the driver to the available pool.
func (s *DriverService) Complete(ctx context.Context, driverID, bookingID uuid.UUID) error {
	if err := s.bookings.CompleteBooking(ctx, bookingID, driverID); err != nil {
		return err
	}
	return s.drivers.SetDriverStatus(ctx, driverID, domain.DriverStatusOnline)
}

// History lists the driver's completed trips, newest first.
func (s *DriverService) History(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.CompletedBookingsForDriver(ctx, driverID)
}

// Earnings aggregates completed-trip income for the dashboard tabs.
func (s *DriverService) Earnings(ctx context.Context, driverID uuid.UUID) (domain.EarningsSummary, error) {
	return s.drivers.DriverEarnings(ctx, driverID)
}
