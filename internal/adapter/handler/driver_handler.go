package handler

import (
	"errors"
	"net/http"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DriverHandler struct {
	svc *service.DriverService
}

func NewDriverHandler(svc *service.DriverService) *DriverHandler {
	return &DriverHandler{svc: svc}
}

type SetStatusRequest struct {
	Online bool    `json:"online"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

func (h *DriverHandler) SetStatus(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Online {
		err = h.svc.GoOnline(c.Request.Context(), id, domain.Coordinate{Lat: req.Lat, Lng: req.Lng})
	} else {
		err = h.svc.GoOffline(c.Request.Context(), id)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"online": req.Online})
}

func (h *DriverHandler) OpenRequests(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}

	bookings, err := h.svc.OpenRequests(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

func (h *DriverHandler) Accept(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.svc.Accept(c.Request.Context(), id, bookingID); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "booking already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func (h *DriverHandler) Reject(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.svc.Reject(c.Request.Context(), id, bookingID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (h *DriverHandler) Complete(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.svc.Complete(c.Request.Context(), id, bookingID); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "booking not in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

func (h *DriverHandler) History(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}

	bookings, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trip history"})
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

func (h *DriverHandler) Earnings(c *gin.Context) {
	id, ok := driverID(c)
	if !ok {
		return
	}

	summary, err := h.svc.Earnings(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load earnings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}
