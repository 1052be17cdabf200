package service

import (
	"context"
	"sync"
	"time"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
	"go.uber.org/zap"
)

// LocationSearch debounces free-text geocoding queries and cancels the
// in-flight request whenever the query changes, so only the latest
// query's results ever surface. A failed search degrades to an empty
// suggestion list.
type LocationSearch struct {
	geocoder port.Geocoder
	debounce time.Duration
	logger   *zap.Logger
	onResult func(query string, locations []domain.Location)

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	cancel context.CancelFunc
}

func NewLocationSearch(geocoder port.Geocoder, debounce time.Duration, logger *zap.Logger, onResult func(string, []domain.Location)) *LocationSearch {
	return &LocationSearch{
		geocoder: geocoder,
		debounce: debounce,
		logger:   logger,
		onResult: onResult,
	}
}

// SetQuery registers the latest input. The search fires once input has
// paused for the debounce window; an empty query clears pending work.
func (s *LocationSearch) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if query == "" {
		return
	}

	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() {
		s.fire(gen, query)
	})
}

func (s *LocationSearch) fire(gen uint64, query string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	locations, err := s.geocoder.Search(ctx, query)

	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		s.logger.Warn("location search failed", zap.String("query", query), zap.Error(err))
		locations = nil
	}
	s.onResult(query, locations)
}

// Close cancels any pending or in-flight search.
func (s *LocationSearch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// ResolveCurrentPosition turns the device position into the sentinel
// "current" location, mapping locator failures onto the geolocation error
// taxonomy for user display.
func ResolveCurrentPosition(ctx context.Context, locator port.Locator) (domain.Location, error) {
	coord, err := locator.CurrentPosition(ctx)
	if err != nil {
		return domain.Location{}, err
	}
	return domain.CurrentLocation(coord), nil
}
