package handler

import (
	"net/http"
	"strings"

	"github.com/Blank129/BookingCar/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const driverIDKey = "driverID"

// AuthMiddleware guards the driver dashboard group: it validates the
// bearer token and stores the driver's id for driverID below.
func AuthMiddleware(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		id, err := authSvc.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(driverIDKey, id)
		c.Next()
	}
}

// driverID extracts the authenticated driver set by AuthMiddleware,
// aborting with 401 on a route that skipped the middleware.
func driverID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(driverIDKey)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}
