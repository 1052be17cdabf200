package service

import (
	"sync"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/geo"
)

// TrackerFactory creates the status tracker when a booking is confirmed.
type TrackerFactory func() *TripStatusTracker

// BookingSession is the three-phase trip-planning state machine:
// LocationEntry -> VehicleSelection -> Confirmation. One session per
// active flow, owned by the caller. Guarded transitions fail as silent
// no-ops; the view layer pre-checks conditions, but the session stays
// correct regardless of caller discipline.
type BookingSession struct {
	mu sync.Mutex

	phase       domain.BookingPhase
	pickup      *domain.Location
	destination *domain.Location
	vehicle     *domain.Vehicle
	distanceKm  float64

	fares      domain.FareCalculator
	newTracker TrackerFactory
	tracker    *TripStatusTracker
}

// SessionState is a read-only snapshot of the session.
type SessionState struct {
	Phase       domain.BookingPhase
	Pickup      *domain.Location
	Destination *domain.Location
	Vehicle     *domain.Vehicle
	DistanceKm  float64
	Fare        int64
}

func NewBookingSession(fares domain.FareCalculator, newTracker TrackerFactory) *BookingSession {
	return &BookingSession{
		phase:      domain.PhaseLocationEntry,
		fares:      fares,
		newTracker: newTracker,
	}
}

// SetPickup replaces the pickup wholesale. Valid in any phase; never
// changes the phase itself.
func (s *BookingSession) SetPickup(loc domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickup = &loc
	s.recomputeDistance()
}

func (s *BookingSession) SetDestination(loc domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = &loc
	s.recomputeDistance()
}

func (s *BookingSession) ClearPickup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickup = nil
	s.recomputeDistance()
}

func (s *BookingSession) ClearDestination() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = nil
	s.recomputeDistance()
}

// Distance is authoritative only while both endpoints are set; otherwise
// it is zeroed rather than left stale.
func (s *BookingSession) recomputeDistance() {
	if s.pickup == nil || s.destination == nil {
		s.distanceKm = 0
		return
	}
	s.distanceKm = geo.DistanceKm(s.pickup.Coord, s.destination.Coord)
}

// AdvanceToVehicleSelection unlocks vehicle selection once both endpoints
// and a positive distance are present. No-op otherwise.
func (s *BookingSession) AdvanceToVehicleSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseLocationEntry {
		return false
	}
	if s.pickup == nil || s.destination == nil || s.distanceKm <= 0 {
		return false
	}
	s.phase = domain.PhaseVehicleSelection
	return true
}

// SelectVehicle stores the chosen vehicle. Outside VehicleSelection it is
// a silent no-op, consistent with the other guards.
func (s *BookingSession) SelectVehicle(v domain.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseVehicleSelection {
		return
	}
	s.vehicle = &v
}

// ConfirmBooking transitions to Confirmation and starts the status
// tracker. Requires pickup, destination and a selected vehicle.
func (s *BookingSession) ConfirmBooking() bool {
	s.mu.Lock()
	if s.phase != domain.PhaseVehicleSelection {
		s.mu.Unlock()
		return false
	}
	if s.pickup == nil || s.destination == nil || s.vehicle == nil {
		s.mu.Unlock()
		return false
	}
	s.phase = domain.PhaseConfirmation
	if s.newTracker != nil && s.tracker == nil {
		s.tracker = s.newTracker()
	}
	s.mu.Unlock()
	return true
}

// EditLocations returns from VehicleSelection to LocationEntry keeping
// pickup and destination. This is a "go back" action, not a reset.
func (s *BookingSession) EditLocations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseVehicleSelection {
		return
	}
	s.phase = domain.PhaseLocationEntry
}

// BackToVehicleSelection backs out of a pending confirmation, retaining
// locations and the selected vehicle. The tracker is torn down.
func (s *BookingSession) BackToVehicleSelection() {
	s.mu.Lock()
	if s.phase != domain.PhaseConfirmation {
		s.mu.Unlock()
		return
	}
	s.phase = domain.PhaseVehicleSelection
	tracker := s.tracker
	s.tracker = nil
	s.mu.Unlock()

	if tracker != nil {
		tracker.Stop()
	}
}

// CancelBooking performs the full reset from any phase: endpoints, vehicle
// and distance are cleared, the phase returns to LocationEntry and the
// tracker is stopped before returning. Idempotent.
func (s *BookingSession) CancelBooking() {
	s.mu.Lock()
	s.phase = domain.PhaseLocationEntry
	s.pickup = nil
	s.destination = nil
	s.vehicle = nil
	s.distanceKm = 0
	tracker := s.tracker
	s.tracker = nil
	s.mu.Unlock()

	if tracker != nil {
		tracker.Stop()
	}
}

// Tracker exposes the active status tracker, nil outside Confirmation.
func (s *BookingSession) Tracker() *TripStatusTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker
}

// State snapshots the session, including the fare for the current
// distance and vehicle (zero until both are known).
func (s *BookingSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SessionState{
		Phase:       s.phase,
		Pickup:      s.pickup,
		Destination: s.destination,
		Vehicle:     s.vehicle,
		DistanceKm:  s.distanceKm,
	}
	if s.vehicle != nil && s.fares != nil {
		st.Fare = s.fares.Fare(s.distanceKm, *s.vehicle)
	}
	return st
}
