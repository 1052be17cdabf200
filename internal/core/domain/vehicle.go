package domain

type VehicleCategory string

const (
	VehicleBike    VehicleCategory = "BIKE"
	VehicleCar     VehicleCategory = "CAR"
	VehiclePremium VehicleCategory = "PREMIUM"
)

// Vehicle is read-only reference data during a booking session.
// PricePerKm is whole VND.
type Vehicle struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Category      VehicleCategory `json:"category"`
	Capacity      int             `json:"capacity"`
	PricePerKm    int64           `json:"price_per_km"`
	EstimatedTime string          `json:"estimated_time"`
	Description   string          `json:"description"`
}

// FareCalculator derives a whole-VND trip price from distance and a vehicle's rate.
type FareCalculator interface {
	Fare(distanceKm float64, v Vehicle) int64
}
