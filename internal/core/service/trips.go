package service

import (
	"context"
	"sync"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/geo"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dispatchRadiusKm = 5.0

// TripService persists confirmed bookings, offers them to nearby online
// drivers and mirrors each booking's status progression to the rider
// over the realtime feed.
type TripService struct {
	store      port.BookingStore
	catalog    *VehicleCatalog
	presence   port.DriverPresence
	notifier   port.Notifier
	feed       port.RealtimeFeed
	fares      domain.FareCalculator
	trackerCfg TrackerConfig
	logger     *zap.Logger

	mu       sync.Mutex
	trackers map[uuid.UUID]*TripStatusTracker
}

func NewTripService(store port.BookingStore, catalog *VehicleCatalog, presence port.DriverPresence, notifier port.Notifier, feed port.RealtimeFeed, fares domain.FareCalculator, trackerCfg TrackerConfig, logger *zap.Logger) *TripService {
	return &TripService{
		store:      store,
		catalog:    catalog,
		presence:   presence,
		notifier:   notifier,
		feed:       feed,
		fares:      fares,
		trackerCfg: trackerCfg,
		logger:     logger,
		trackers:   make(map[uuid.UUID]*TripStatusTracker),
	}
}

// CreateBooking recomputes distance and price server-side, persists the
// booking and notifies nearby drivers. A booking is created even when no
// driver is around; it stays visible to drivers coming online later.
func (s *TripService) CreateBooking(ctx context.Context, userID uuid.UUID, pickup, destination domain.Location, vehicleID int) (domain.Booking, error) {
	vehicle, ok := s.catalog.Find(ctx, vehicleID)
	if !ok {
		return domain.Booking{}, domain.ErrVehicleNotFound
	}

	distanceKm := geo.DistanceKm(pickup.Coord, destination.Coord)
	booking, err := s.store.CreateBooking(ctx, port.CreateBookingParams{
		UserID:      userID,
		VehicleID:   vehicle.ID,
		Pickup:      pickup,
		Destination: destination,
		DistanceKm:  distanceKm,
		TotalPrice:  s.fares.Fare(distanceKm, vehicle),
	})
	if err != nil {
		return domain.Booking{}, err
	}
	observability.BookingsCreated.Inc()

	driverIDs, err := s.presence.NearbyDrivers(ctx, pickup.Coord, dispatchRadiusKm)
	if err != nil {
		s.logger.Warn("nearby driver lookup failed", zap.Error(err))
		driverIDs = nil
	}
	for _, driverID := range driverIDs {
		s.notifier.SendTripRequest(driverID, map[string]any{
			"event":       "TRIP_REQUEST",
			"booking_id":  booking.ID,
			"pickup":      pickup,
			"destination": destination,
			"distance_km": booking.DistanceKm,
			"total_price": booking.TotalPrice,
		})
	}
	if len(driverIDs) == 0 {
		s.logger.Info("no nearby drivers for booking", zap.String("booking_id", booking.ID.String()))
	}

	s.startTracker(booking)
	return booking, nil
}

// startTracker streams the booking's status timeline to the rider. The
// simulated delays cover the gap until a driver responds; an actual
// acceptance reaches the tracker through the feed subscription and wins
// over the timers.
func (s *TripService) startTracker(booking domain.Booking) {
	userID := booking.UserID
	bookingID := booking.ID

	tracker := NewTripStatusTracker(s.trackerCfg, s.logger, func(status domain.TripStatus, countdown int) {
		s.notifier.SendTripStatus(userID.String(), map[string]any{
			"booking_id": bookingID,
			"status":     status,
			"countdown":  countdown,
		})
		if status == domain.StatusArrived {
			s.dropTracker(bookingID)
		}
	})
	tracker.BindFeed(s.feed, userID.String(), func(ctx context.Context) (domain.Booking, error) {
		return s.store.ActiveBookingByUser(ctx, userID)
	})

	s.mu.Lock()
	s.trackers[bookingID] = tracker
	s.mu.Unlock()
}

func (s *TripService) dropTracker(bookingID uuid.UUID) *TripStatusTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	tracker := s.trackers[bookingID]
	delete(s.trackers, bookingID)
	return tracker
}

// ActiveBooking returns the rider's current non-terminal booking.
func (s *TripService) ActiveBooking(ctx context.Context, userID uuid.UUID) (domain.Booking, error) {
	return s.store.ActiveBookingByUser(ctx, userID)
}

// Cancel marks the booking cancelled, stops the booking's status tracker
// and pushes the change to the rider's feed.
func (s *TripService) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	if err := s.store.CancelBooking(ctx, bookingID, userID); err != nil {
		return err
	}
	observability.BookingsCancelled.Inc()

	if tracker := s.dropTracker(bookingID); tracker != nil {
		tracker.Stop()
	}
	s.notifier.NotifyBookingChanged(userID.String())
	return nil
}
