package pricing

import (
	"testing"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestStandardStrategy_Fare(t *testing.T) {
	strategy := NewStandardStrategy()

	tests := []struct {
		name       string
		distanceKm float64
		vehicle    domain.Vehicle
		expected   int64
	}{
		{
			name:       "Whole kilometers",
			distanceKm: 3.0,
			vehicle:    domain.Vehicle{ID: 1, PricePerKm: 8000},
			expected:   24000,
		},
		{
			name:       "Fractional distance rounds up",
			distanceKm: 2.3,
			vehicle:    domain.Vehicle{ID: 2, PricePerKm: 12000},
			expected:   27600,
		},
		{
			name:       "Sub-unit remainder rounds up",
			distanceKm: 1.0001,
			vehicle:    domain.Vehicle{ID: 3, PricePerKm: 18000},
			expected:   18002,
		},
		{
			name:       "Zero distance",
			distanceKm: 0,
			vehicle:    domain.Vehicle{ID: 2, PricePerKm: 12000},
			expected:   0,
		},
		{
			name:       "Negative distance clamped",
			distanceKm: -4,
			vehicle:    domain.Vehicle{ID: 1, PricePerKm: 8000},
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strategy.Fare(tt.distanceKm, tt.vehicle)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestStandardStrategy_QuoteAll(t *testing.T) {
	strategy := NewStandardStrategy()

	vehicles := []domain.Vehicle{
		{ID: 1, Name: "FastBike", PricePerKm: 8000},
		{ID: 2, Name: "FastCar", PricePerKm: 12000},
	}

	quotes := strategy.QuoteAll(5.2, vehicles)

	assert.Len(t, quotes, 2)
	assert.Equal(t, int64(41600), quotes[0].Total)
	assert.Equal(t, int64(62400), quotes[1].Total)
	assert.Equal(t, "FastCar", quotes[1].Vehicle.Name)
}
