package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridebook", Name: "bookings_created_total", Help: "Total bookings persisted",
	})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridebook", Name: "bookings_cancelled_total", Help: "Total bookings cancelled",
	})
	TripStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ridebook", Name: "trip_status_transitions_total", Help: "Trip status transitions by target status"},
		[]string{"status"},
	)
	DriversOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ridebook", Name: "drivers_online", Help: "Number of online drivers",
	})
	StaleRouteResponses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridebook", Name: "stale_route_responses_total", Help: "Route lookups discarded because a newer request superseded them",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ridebook", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ridebook",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
