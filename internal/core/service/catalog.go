package service

import (
	"context"
	"sort"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/core/service/pricing"
	"go.uber.org/zap"
)

// defaultVehicles is served when the vehicle table is unreachable.
var defaultVehicles = []domain.Vehicle{
	{ID: 1, Name: "FastBike", Category: domain.VehicleBike, Capacity: 1, PricePerKm: 8000, EstimatedTime: "5-10 phút", Description: "Nhanh chóng, tiết kiệm"},
	{ID: 2, Name: "FastCar", Category: domain.VehicleCar, Capacity: 4, PricePerKm: 12000, EstimatedTime: "8-15 phút", Description: "Thoải mái, an toàn"},
	{ID: 3, Name: "FastPremium", Category: domain.VehiclePremium, Capacity: 4, PricePerKm: 18000, EstimatedTime: "10-12 phút", Description: "Sang trọng, dịch vụ cao cấp"},
}

// VehicleCatalog exposes the ordered vehicle list and comparative fare
// quotes. Read-only reference data during a session.
type VehicleCatalog struct {
	store  port.VehicleStore
	prices *pricing.StandardStrategy
	logger *zap.Logger
}

func NewVehicleCatalog(store port.VehicleStore, prices *pricing.StandardStrategy, logger *zap.Logger) *VehicleCatalog {
	return &VehicleCatalog{store: store, prices: prices, logger: logger}
}

// List returns vehicles sorted by id ascending for stable display.
func (c *VehicleCatalog) List(ctx context.Context) []domain.Vehicle {
	vehicles, err := c.store.ListVehicles(ctx)
	if err != nil || len(vehicles) == 0 {
		if err != nil {
			c.logger.Warn("vehicle catalog fetch failed, using defaults", zap.Error(err))
		}
		vehicles = append([]domain.Vehicle(nil), defaultVehicles...)
	}

	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	return vehicles
}

// Quotes prices every catalog entry for the given distance.
func (c *VehicleCatalog) Quotes(ctx context.Context, distanceKm float64) []pricing.Quote {
	return c.prices.QuoteAll(distanceKm, c.List(ctx))
}

// Find returns the catalog entry with the given id.
func (c *VehicleCatalog) Find(ctx context.Context, id int) (domain.Vehicle, bool) {
	for _, v := range c.List(ctx) {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}
