package domain

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition: booking condition not met")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrNoDriverAvailable = errors.New("no available drivers found")

	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrLocationTimeout     = errors.New("geolocation timed out")
)
