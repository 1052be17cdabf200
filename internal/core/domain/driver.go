package domain

import (
	"time"

	"github.com/google/uuid"
)

type DriverStatus string

const (
	DriverStatusOffline DriverStatus = "OFFLINE"
	DriverStatusOnline  DriverStatus = "ONLINE"
	DriverStatusEnRoute DriverStatus = "EN_ROUTE"
)

type Driver struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PlateLicense string
	PasswordHash string
	VehicleID    int
	Status       DriverStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (d *Driver) CanAcceptBooking() bool {
	return d.Status == DriverStatusOnline
}
