package handler

import (
	"net/http"

	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/Blank129/BookingCar/internal/core/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc     *service.AuthService
	drivers port.DriverStore
}

func NewAuthHandler(svc *service.AuthService, drivers port.DriverStore) *AuthHandler {
	return &AuthHandler{svc: svc, drivers: drivers}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.drivers.GetDriverByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if !h.svc.CheckPasswordHash(req.Password, driver.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.svc.GenerateToken(driver.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "driver_id": driver.ID})
}
