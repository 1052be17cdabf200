package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	trips   *service.TripService
	catalog *service.VehicleCatalog
}

func NewBookingHandler(trips *service.TripService, catalog *service.VehicleCatalog) *BookingHandler {
	return &BookingHandler{trips: trips, catalog: catalog}
}

// ListVehicles returns the catalog, with per-vehicle fares when a
// distance is supplied.
func (h *BookingHandler) ListVehicles(c *gin.Context) {
	if raw := c.Query("distance_km"); raw != "" {
		distance, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid distance_km"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": h.catalog.Quotes(c.Request.Context(), distance)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.catalog.List(c.Request.Context())})
}

type locationRequest struct {
	ID      string  `json:"id"`
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat" binding:"required,latitude"`
	Lng     float64 `json:"lng" binding:"required,longitude"`
}

func (r locationRequest) toDomain() domain.Location {
	return domain.Location{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Coord:   domain.Coordinate{Lat: r.Lat, Lng: r.Lng},
	}
}

type CreateBookingRequest struct {
	UserID      string          `json:"user_id" binding:"required,uuid"`
	VehicleID   int             `json:"vehicle_id" binding:"required"`
	Pickup      locationRequest `json:"pickup" binding:"required"`
	Destination locationRequest `json:"destination" binding:"required"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	booking, err := h.trips.CreateBooking(c.Request.Context(), userID, req.Pickup.toDomain(), req.Destination.toDomain(), req.VehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown vehicle"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": booking})
}

func (h *BookingHandler) ActiveBooking(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	booking, err := h.trips.ActiveBooking(c.Request.Context(), userID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active booking"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

type CancelBookingRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := uuid.Parse(req.UserID)

	if err := h.trips.Cancel(c.Request.Context(), bookingID, userID); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
