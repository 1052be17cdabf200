package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/service/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVehicleCatalog_ListSortsByID(t *testing.T) {
	mockStore := new(MockVehicleStore)
	mockStore.On("ListVehicles", mock.Anything).Return([]domain.Vehicle{
		{ID: 3, Name: "FastPremium", PricePerKm: 18000},
		{ID: 1, Name: "FastBike", PricePerKm: 8000},
		{ID: 2, Name: "FastCar", PricePerKm: 12000},
	}, nil)

	catalog := NewVehicleCatalog(mockStore, pricing.NewStandardStrategy(), zap.NewNop())

	vehicles := catalog.List(context.Background())
	require.Len(t, vehicles, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{vehicles[0].ID, vehicles[1].ID, vehicles[2].ID})
	mockStore.AssertExpectations(t)
}

func TestVehicleCatalog_FallsBackWhenStoreFails(t *testing.T) {
	mockStore := new(MockVehicleStore)
	mockStore.On("ListVehicles", mock.Anything).Return([]domain.Vehicle(nil), errors.New("db down"))

	catalog := NewVehicleCatalog(mockStore, pricing.NewStandardStrategy(), zap.NewNop())

	vehicles := catalog.List(context.Background())
	require.Len(t, vehicles, 3)
	assert.Equal(t, "FastBike", vehicles[0].Name)
	assert.Equal(t, int64(8000), vehicles[0].PricePerKm)
	assert.Equal(t, int64(12000), vehicles[1].PricePerKm)
	assert.Equal(t, int64(18000), vehicles[2].PricePerKm)
}

func TestVehicleCatalog_FallsBackWhenStoreEmpty(t *testing.T) {
	mockStore := new(MockVehicleStore)
	mockStore.On("ListVehicles", mock.Anything).Return([]domain.Vehicle{}, nil)

	catalog := NewVehicleCatalog(mockStore, pricing.NewStandardStrategy(), zap.NewNop())

	assert.Len(t, catalog.List(context.Background()), 3)
}

func TestVehicleCatalog_Quotes(t *testing.T) {
	mockStore := new(MockVehicleStore)
	mockStore.On("ListVehicles", mock.Anything).Return([]domain.Vehicle(nil), errors.New("db down"))

	catalog := NewVehicleCatalog(mockStore, pricing.NewStandardStrategy(), zap.NewNop())

	quotes := catalog.Quotes(context.Background(), 5.2)
	require.Len(t, quotes, 3)
	assert.Equal(t, int64(41600), quotes[0].Total)
	assert.Equal(t, int64(62400), quotes[1].Total)
	assert.Equal(t, int64(93600), quotes[2].Total)
}

func TestVehicleCatalog_Find(t *testing.T) {
	mockStore := new(MockVehicleStore)
	mockStore.On("ListVehicles", mock.Anything).Return([]domain.Vehicle{}, nil)

	catalog := NewVehicleCatalog(mockStore, pricing.NewStandardStrategy(), zap.NewNop())

	v, ok := catalog.Find(context.Background(), 2)
	require.True(t, ok)
	assert.Equal(t, "FastCar", v.Name)

	_, ok = catalog.Find(context.Background(), 99)
	assert.False(t, ok)
}

type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
