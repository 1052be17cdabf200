package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDriverFixture(t *testing.T) (*DriverService, *MockBookingStore, *MockDriverStore, *MockDriverPresence, *MockNotifier) {
	t.Helper()
	mockBookings := new(MockBookingStore)
	mockDrivers := new(MockDriverStore)
	mockPresence := new(MockDriverPresence)
	mockNotifier := new(MockNotifier)
	svc := NewDriverService(mockBookings, mockDrivers, mockPresence, mockNotifier, zap.NewNop())
	return svc, mockBookings, mockDrivers, mockPresence, mockNotifier
}

func TestDriverService_GoOnline(t *testing.T) {
	svc, _, mockDrivers, mockPresence, _ := newDriverFixture(t)

	driverID := uuid.New()
	pos := domain.Coordinate{Lat: 10.77, Lng: 106.7}
	mockDrivers.On("SetDriverStatus", mock.Anything, driverID, domain.DriverStatusOnline).Return(nil)
	mockPresence.On("SetOnline", mock.Anything, driverID.String(), pos).Return(nil)

	require.NoError(t, svc.GoOnline(context.Background(), driverID, pos))
	mockDrivers.AssertExpectations(t)
	mockPresence.AssertExpectations(t)
}

func TestDriverService_GoOnline_StatusUpdateFailureSkipsPresence(t *testing.T) {
	svc, _, mockDrivers, mockPresence, _ := newDriverFixture(t)

	driverID := uuid.New()
	mockDrivers.On("SetDriverStatus", mock.Anything, driverID, domain.DriverStatusOnline).Return(errors.New("db down"))

	err := svc.GoOnline(context.Background(), driverID, domain.Coordinate{})

	assert.Error(t, err)
	mockPresence.AssertNotCalled(t, "SetOnline", mock.Anything, mock.Anything, mock.Anything)
}

func TestDriverService_GoOffline(t *testing.T) {
	svc, _, mockDrivers, mockPresence, _ := newDriverFixture(t)

	driverID := uuid.New()
	mockDrivers.On("SetDriverStatus", mock.Anything, driverID, domain.DriverStatusOffline).Return(nil)
	mockPresence.On("SetOffline", mock.Anything, driverID.String()).Return(nil)

	require.NoError(t, svc.GoOffline(context.Background(), driverID))
	mockPresence.AssertExpectations(t)
}

func TestDriverService_Accept_NotifiesRider(t *testing.T) {
	svc, mockBookings, mockDrivers, _, mockNotifier := newDriverFixture(t)

	driverID := uuid.New()
	bookingID := uuid.New()
	riderID := uuid.New()

	mockBookings.On("AssignDriver", mock.Anything, bookingID, driverID).
		Return(domain.Booking{ID: bookingID, UserID: riderID, Status: domain.BookingDriverAssigned}, nil)
	mockDrivers.On("SetDriverStatus", mock.Anything, driverID, domain.DriverStatusEnRoute).Return(nil)
	mockNotifier.On("NotifyBookingChanged", riderID.String()).Return()

	require.NoError(t, svc.Accept(context.Background(), driverID, bookingID))
	mockNotifier.AssertExpectations(t)
}

func TestDriverService_Accept_RaceLostPropagatesConflict(t *testing.T) {
	svc, mockBookings, _, _, mockNotifier := newDriverFixture(t)

	mockBookings.On("AssignDriver", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Booking{}, domain.ErrInvalidTransition)

	err := svc.Accept(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	mockNotifier.AssertNotCalled(t, "NotifyBookingChanged", mock.Anything)
}

func TestDriverService_Accept_StatusUpdateFailureIsNotFatal(t *testing.T) {
	svc, mockBookings, mockDrivers, _, mockNotifier := newDriverFixture(t)

	driverID := uuid.New()
	bookingID := uuid.New()
	riderID := uuid.New()

	mockBookings.On("AssignDriver", mock.Anything, bookingID, driverID).
		Return(domain.Booking{ID: bookingID, UserID: riderID}, nil)
	mockDrivers.On("SetDriverStatus", mock.Anything, driverID, domain.DriverStatusEnRoute).Return(errors.New("db down"))
	mockNotifier.On("NotifyBookingChanged", riderID.String()).Return()

	require.NoError(t, svc.Accept(context.Background(), driverID, bookingID))
	mockNotifier.AssertExpectations(t)
}

func TestDriverService_Reject(t *testing.T) {
	svc, mockBookings, _, _, _ := newDriverFixture(t)

	driverID := uuid.New()
	bookingID := uuid.New()
	mockBookings.On("RecordRejection", mock.Anything, bookingID, driverID).Return(nil)

	require.NoError(t, svc.Reject(context.Background(), driverID, bookingID))
	mockBookings.AssertExpectations(t)
}

func TestDriverService_Complete_ReturnsDriverToPool(t *testing.T) {
	svc, mockBookings, mockDrivers, _, _ := newDriverFixture(t)

	driverID := uuid.New()
	bookingID := uuid.New()
	mockBookings.On("CompleteBooking", mock.Anything, bookingID, driverID).Return(nil)
	mockDrivers.On("SetDriverStatus", mock.Anything, driverID, domain.DriverStatusOnline).Return(nil)

	require.NoError(t, svc.Complete(context.Background(), driverID, bookingID))
	mockDrivers.AssertExpectations(t)
}

func TestDriverService_History(t *testing.T) {
	svc, mockBookings, _, _, _ := newDriverFixture(t)

	driverID := uuid.New()
	trips := []domain.Booking{
		{ID: uuid.New(), Status: domain.BookingCompleted, TotalPrice: 96041},
		{ID: uuid.New(), Status: domain.BookingCompleted, TotalPrice: 24000},
	}
	mockBookings.On("CompletedBookingsForDriver", mock.Anything, driverID).Return(trips, nil)

	got, err := svc.History(context.Background(), driverID)

	require.NoError(t, err)
	assert.Equal(t, trips, got)
	mockBookings.AssertExpectations(t)
}

func TestDriverService_Earnings(t *testing.T) {
	svc, _, mockDrivers, _, _ := newDriverFixture(t)

	driverID := uuid.New()
	summary := domain.EarningsSummary{Today: 250000, Week: 1200000, Month: 4800000, TripsToday: 6}
	mockDrivers.On("DriverEarnings", mock.Anything, driverID).Return(summary, nil)

	got, err := svc.Earnings(context.Background(), driverID)

	require.NoError(t, err)
	assert.Equal(t, summary, got)
}

type MockDriverStore struct {
	mock.Mock
}

func (m *MockDriverStore) GetDriverByEmail(ctx context.Context, email string) (domain.Driver, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Driver), args.Error(1)
}

func (m *MockDriverStore) SetDriverStatus(ctx context.Context, driverID uuid.UUID, status domain.DriverStatus) error {
	args := m.Called(ctx, driverID, status)
	return args.Error(0)
}

func (m *MockDriverStore) DriverEarnings(ctx context.Context, driverID uuid.UUID) (domain.EarningsSummary, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(domain.EarningsSummary), args.Error(1)
}
