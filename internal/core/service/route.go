package service

import (
	"context"
	"sync"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/geo"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/observability"
	"go.uber.org/zap"
)

// RouteResult is the outcome of a route lookup. Estimated is set when the
// routing service failed and the distance fell back to local haversine.
type RouteResult struct {
	DistanceKm float64
	Geometry   []domain.Coordinate
	Estimated  bool
}

// RoutePlanner runs route lookups asynchronously. Re-requesting while a
// lookup is in flight cancels it and bumps a generation counter, so a
// stale response that resolves anyway is discarded: last-write-wins by
// request identity, not by arrival order.
type RoutePlanner struct {
	svc      port.RouteService
	logger   *zap.Logger
	onResult func(RouteResult)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewRoutePlanner(svc port.RouteService, logger *zap.Logger, onResult func(RouteResult)) *RoutePlanner {
	return &RoutePlanner{svc: svc, logger: logger, onResult: onResult}
}

// Lookup starts a route request between the endpoints. A failed request
// degrades to a haversine estimate rather than surfacing an error.
func (p *RoutePlanner) Lookup(ctx context.Context, from, to domain.Coordinate) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		defer cancel()

		route, err := p.svc.Route(reqCtx, from, to)

		p.mu.Lock()
		stale := gen != p.gen
		p.mu.Unlock()
		if stale {
			observability.StaleRouteResponses.Inc()
			return
		}

		result := RouteResult{DistanceKm: route.DistanceKm, Geometry: route.Geometry}
		if err != nil {
			p.logger.Warn("route lookup failed, falling back to haversine", zap.Error(err))
			result = RouteResult{DistanceKm: geo.DistanceKm(from, to), Estimated: true}
		}
		p.onResult(result)
	}()
}

// Cancel aborts any in-flight lookup and invalidates its response.
func (p *RoutePlanner) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
