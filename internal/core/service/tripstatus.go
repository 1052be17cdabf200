package service

import (
	"context"
	"sync"
	"time"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/observability"
	"go.uber.org/zap"
)

// TrackerConfig tunes the simulated driver-matching timeline. Delays are
// measured from tracker creation; the countdown starts when Arriving is
// entered and ticks once per TickInterval.
type TrackerConfig struct {
	FoundDelay     time.Duration
	ArrivingDelay  time.Duration
	CountdownStart int
	TickInterval   time.Duration
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		FoundDelay:     2500 * time.Millisecond,
		ArrivingDelay:  5 * time.Second,
		CountdownStart: 5,
		TickInterval:   time.Second,
	}
}

// StatusListener observes tracker transitions and countdown ticks.
type StatusListener func(status domain.TripStatus, countdown int)

// BookingFetch reloads the rider's active booking after a change
// notification. The feed carries no delta, so state is recalculated
// from whatever the fetch returns.
type BookingFetch func(ctx context.Context) (domain.Booking, error)

// TripStatusTracker drives the Searching -> Found -> Arriving -> Arrived
// progression. Timer-driven and externally-driven updates feed the same
// event channel, so transition logic is agnostic to the source. The
// progression is strictly forward; Arrived is emitted exactly once.
type TripStatusTracker struct {
	cfg      TrackerConfig
	logger   *zap.Logger
	onChange StatusListener

	mu          sync.Mutex
	status      domain.TripStatus
	countdown   int
	unsubscribe func()

	events   chan domain.TripStatus
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTripStatusTracker starts tracking immediately with status Searching.
func NewTripStatusTracker(cfg TrackerConfig, logger *zap.Logger, onChange StatusListener) *TripStatusTracker {
	t := &TripStatusTracker{
		cfg:      cfg,
		logger:   logger,
		onChange: onChange,
		status:   domain.StatusSearching,
		events:   make(chan domain.TripStatus, 4),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go t.run()
	return t
}

// Status returns the current status and the remaining countdown. The
// countdown is only meaningful while status is Arriving.
func (t *TripStatusTracker) Status() (domain.TripStatus, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status, t.countdown
}

// Apply feeds an externally-observed status into the tracker. Backward
// updates are ignored; updates after Stop are dropped.
func (t *TripStatusTracker) Apply(status domain.TripStatus) {
	select {
	case t.events <- status:
	case <-t.done:
	}
}

// BindFeed subscribes the tracker to booking-change notifications for the
// given user. Every notification triggers a full refetch; a booking with an
// assigned driver counts as at least Found. The subscription is released
// on Stop.
func (t *TripStatusTracker) BindFeed(feed port.RealtimeFeed, userID string, fetch BookingFetch) {
	unsub := feed.Subscribe(userID, func() {
		booking, err := fetch(context.Background())
		if err != nil {
			t.logger.Warn("refetching booking after change notification failed", zap.Error(err))
			return
		}
		if booking.HasDriver() {
			t.Apply(domain.StatusFound)
		}
	})

	t.mu.Lock()
	t.unsubscribe = unsub
	t.mu.Unlock()

	// tracker already finished: nothing will release it later
	select {
	case <-t.done:
		t.releaseSubscription()
	default:
	}
}

// Stop tears the tracker down: the subscription is released and all timers
// are cancelled before Stop returns, so no transition can be observed
// afterwards. Safe to call more than once.
func (t *TripStatusTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}

func (t *TripStatusTracker) releaseSubscription() {
	t.mu.Lock()
	unsub := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// The subscription is released on every exit path, terminal Arrived
// included, before done is closed.
func (t *TripStatusTracker) run() {
	defer close(t.done)
	defer t.releaseSubscription()

	foundTimer := time.NewTimer(t.cfg.FoundDelay)
	defer foundTimer.Stop()
	arrivingTimer := time.NewTimer(t.cfg.ArrivingDelay)
	defer arrivingTimer.Stop()

	var ticker *time.Ticker
	var tickC <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	startCountdown := func() {
		if ticker == nil {
			ticker = time.NewTicker(t.cfg.TickInterval)
			tickC = ticker.C
		}
	}

	for {
		select {
		case <-t.stop:
			return
		case <-foundTimer.C:
			t.advance(domain.StatusFound)
		case <-arrivingTimer.C:
			if t.advance(domain.StatusArriving) {
				startCountdown()
			}
		case s := <-t.events:
			if !t.advance(s) {
				continue
			}
			if s == domain.StatusArriving {
				startCountdown()
			}
			if s == domain.StatusArrived {
				return
			}
		case <-tickC:
			if t.tickCountdown() {
				t.advance(domain.StatusArrived)
				return
			}
		}
	}
}

// advance moves to the target status if it is strictly forward.
func (t *TripStatusTracker) advance(to domain.TripStatus) bool {
	t.mu.Lock()
	if !t.status.Before(to) {
		t.mu.Unlock()
		return false
	}
	t.status = to
	if to == domain.StatusArriving {
		t.countdown = t.cfg.CountdownStart
	}
	countdown := t.countdown
	t.mu.Unlock()

	observability.TripStatusTransitions.WithLabelValues(string(to)).Inc()
	t.logger.Info("trip status changed", zap.String("status", string(to)), zap.Int("countdown", countdown))
	if t.onChange != nil {
		t.onChange(to, countdown)
	}
	return true
}

// tickCountdown decrements once and reports whether zero was reached.
func (t *TripStatusTracker) tickCountdown() bool {
	t.mu.Lock()
	if t.status != domain.StatusArriving {
		t.mu.Unlock()
		return false
	}
	if t.countdown > 0 {
		t.countdown--
	}
	countdown := t.countdown
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(domain.StatusArriving, countdown)
	}
	return countdown == 0
}
