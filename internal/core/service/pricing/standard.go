package pricing

import (
	"math"

	"github.com/Blank129/BookingCar/internal/core/domain"
)

// Quote is a per-vehicle fare for comparative display.
type Quote struct {
	Vehicle domain.Vehicle `json:"vehicle"`
	Total   int64          `json:"total"`
}

type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{}
}

// Fare charges ceil(distance * rate): the rider is never undercharged
// by rounding. Display formatting is a presentation concern.
func (s *StandardStrategy) Fare(distanceKm float64, v domain.Vehicle) int64 {
	if distanceKm < 0 {
		distanceKm = 0
	}

	return int64(math.Ceil(distanceKm * float64(v.PricePerKm)))
}

func (s *StandardStrategy) QuoteAll(distanceKm float64, vehicles []domain.Vehicle) []Quote {
	quotes := make([]Quote, 0, len(vehicles))
	for _, v := range vehicles {
		quotes = append(quotes, Quote{Vehicle: v, Total: s.Fare(distanceKm, v)})
	}

	return quotes
}
