package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/geo"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/core/service/pricing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTripFixture(t *testing.T) (*TripService, *MockBookingStore, *MockDriverPresence, *MockNotifier) {
	t.Helper()
	mockStore := new(MockBookingStore)
	mockPresence := new(MockDriverPresence)
	mockNotifier := new(MockNotifier)

	vehicleStore := new(MockVehicleStore)
	vehicleStore.On("ListVehicles", mock.Anything).Return([]domain.Vehicle{}, nil)
	catalog := NewVehicleCatalog(vehicleStore, pricing.NewStandardStrategy(), zap.NewNop())

	// timers far out so no simulated transition fires mid-test
	idleCfg := TrackerConfig{FoundDelay: time.Hour, ArrivingDelay: time.Hour, CountdownStart: 5, TickInterval: time.Hour}
	svc := NewTripService(mockStore, catalog, mockPresence, mockNotifier, &fakeFeed{}, pricing.NewStandardStrategy(), idleCfg, zap.NewNop())
	t.Cleanup(func() {
		svc.mu.Lock()
		trackers := make([]*TripStatusTracker, 0, len(svc.trackers))
		for _, tr := range svc.trackers {
			trackers = append(trackers, tr)
		}
		svc.mu.Unlock()
		for _, tr := range trackers {
			tr.Stop()
		}
	})
	return svc, mockStore, mockPresence, mockNotifier
}

func TestTripService_CreateBooking_NotifiesNearbyDrivers(t *testing.T) {
	svc, mockStore, mockPresence, mockNotifier := newTripFixture(t)

	userID := uuid.New()
	bookingID := uuid.New()
	driver1 := uuid.New().String()
	driver2 := uuid.New().String()

	wantDistance := geo.DistanceKm(airport.Coord, landmark.Coord)
	wantPrice := pricing.NewStandardStrategy().Fare(wantDistance, domain.Vehicle{ID: 2, PricePerKm: 12000})
	mockStore.On("CreateBooking", mock.Anything, mock.MatchedBy(func(arg port.CreateBookingParams) bool {
		// distance and price are recomputed server-side
		return arg.UserID == userID && arg.VehicleID == 2 &&
			arg.DistanceKm == wantDistance && arg.TotalPrice == wantPrice
	})).Return(domain.Booking{ID: bookingID, UserID: userID, Status: domain.BookingPending, DistanceKm: wantDistance, TotalPrice: wantPrice}, nil)
	mockPresence.On("NearbyDrivers", mock.Anything, airport.Coord, 5.0).Return([]string{driver1, driver2}, nil)
	mockNotifier.On("SendTripRequest", driver1, mock.Anything).Return()
	mockNotifier.On("SendTripRequest", driver2, mock.Anything).Return()

	booking, err := svc.CreateBooking(context.Background(), userID, airport, landmark, 2)

	require.NoError(t, err)
	assert.Equal(t, bookingID, booking.ID)
	mockStore.AssertExpectations(t)
	mockPresence.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestTripService_CreateBooking_UnknownVehicle(t *testing.T) {
	svc, mockStore, _, _ := newTripFixture(t)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), airport, landmark, 99)

	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	mockStore.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestTripService_CreateBooking_SucceedsWithNoDriversAround(t *testing.T) {
	svc, mockStore, mockPresence, mockNotifier := newTripFixture(t)

	mockStore.On("CreateBooking", mock.Anything, mock.Anything).Return(domain.Booking{ID: uuid.New()}, nil)
	mockPresence.On("NearbyDrivers", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), airport, landmark, 1)

	require.NoError(t, err)
	mockNotifier.AssertNotCalled(t, "SendTripRequest", mock.Anything, mock.Anything)
}

func TestTripService_CreateBooking_PresenceFailureIsNotFatal(t *testing.T) {
	svc, mockStore, mockPresence, mockNotifier := newTripFixture(t)

	mockStore.On("CreateBooking", mock.Anything, mock.Anything).Return(domain.Booking{ID: uuid.New()}, nil)
	mockPresence.On("NearbyDrivers", mock.Anything, mock.Anything, mock.Anything).Return([]string(nil), errors.New("redis down"))

	booking, err := svc.CreateBooking(context.Background(), uuid.New(), airport, landmark, 1)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, booking.ID)
	mockNotifier.AssertNotCalled(t, "SendTripRequest", mock.Anything, mock.Anything)
}

func TestTripService_CreateBooking_StartsStatusTracker(t *testing.T) {
	svc, mockStore, mockPresence, mockNotifier := newTripFixture(t)

	bookingID := uuid.New()
	userID := uuid.New()
	mockStore.On("CreateBooking", mock.Anything, mock.Anything).Return(domain.Booking{ID: bookingID, UserID: userID}, nil)
	mockPresence.On("NearbyDrivers", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)

	_, err := svc.CreateBooking(context.Background(), userID, airport, landmark, 1)
	require.NoError(t, err)

	svc.mu.Lock()
	tracker := svc.trackers[bookingID]
	svc.mu.Unlock()
	require.NotNil(t, tracker)
	status, _ := tracker.Status()
	assert.Equal(t, domain.StatusSearching, status)

	mockStore.On("CancelBooking", mock.Anything, bookingID, userID).Return(nil)
	mockNotifier.On("NotifyBookingChanged", userID.String()).Return()
	require.NoError(t, svc.Cancel(context.Background(), bookingID, userID))

	svc.mu.Lock()
	_, stillTracked := svc.trackers[bookingID]
	svc.mu.Unlock()
	assert.False(t, stillTracked, "cancel must tear the tracker down")
}

func TestTripService_Cancel_NotifiesRiderFeed(t *testing.T) {
	svc, mockStore, _, mockNotifier := newTripFixture(t)

	bookingID := uuid.New()
	userID := uuid.New()
	mockStore.On("CancelBooking", mock.Anything, bookingID, userID).Return(nil)
	mockNotifier.On("NotifyBookingChanged", userID.String()).Return()

	require.NoError(t, svc.Cancel(context.Background(), bookingID, userID))
	mockNotifier.AssertExpectations(t)
}

func TestTripService_Cancel_StoreErrorSkipsNotify(t *testing.T) {
	svc, mockStore, _, mockNotifier := newTripFixture(t)

	mockStore.On("CancelBooking", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrBookingNotFound)

	err := svc.Cancel(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	mockNotifier.AssertNotCalled(t, "NotifyBookingChanged", mock.Anything)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) CreateBooking(ctx context.Context, arg port.CreateBookingParams) (domain.Booking, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingStore) ActiveBookingByUser(ctx context.Context, userID uuid.UUID) (domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingStore) OpenBookingsForDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) CompletedBookingsForDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) AssignDriver(ctx context.Context, bookingID, driverID uuid.UUID) (domain.Booking, error) {
	args := m.Called(ctx, bookingID, driverID)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockBookingStore) RecordRejection(ctx context.Context, bookingID, driverID uuid.UUID) error {
	args := m.Called(ctx, bookingID, driverID)
	return args.Error(0)
}

func (m *MockBookingStore) SetBookingStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *MockBookingStore) CompleteBooking(ctx context.Context, bookingID, driverID uuid.UUID) error {
	args := m.Called(ctx, bookingID, driverID)
	return args.Error(0)
}

func (m *MockBookingStore) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	args := m.Called(ctx, bookingID, userID)
	return args.Error(0)
}

type MockDriverPresence struct {
	mock.Mock
}

func (m *MockDriverPresence) SetOnline(ctx context.Context, driverID string, c domain.Coordinate) error {
	args := m.Called(ctx, driverID, c)
	return args.Error(0)
}

func (m *MockDriverPresence) SetOffline(ctx context.Context, driverID string) error {
	args := m.Called(ctx, driverID)
	return args.Error(0)
}

func (m *MockDriverPresence) NearbyDrivers(ctx context.Context, c domain.Coordinate, radiusKm float64) ([]string, error) {
	args := m.Called(ctx, c, radiusKm)
	return args.Get(0).([]string), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingChanged(userID string) {
	m.Called(userID)
}

func (m *MockNotifier) SendTripRequest(driverID string, payload any) {
	m.Called(driverID, payload)
}

func (m *MockNotifier) SendTripStatus(userID string, payload any) {
	m.Called(userID, payload)
}
