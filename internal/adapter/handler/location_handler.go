package handler

import (
	"net/http"
	"strconv"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/geo"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LocationHandler struct {
	geocoder port.Geocoder
	routes   port.RouteService
	logger   *zap.Logger
}

func NewLocationHandler(geocoder port.Geocoder, routes port.RouteService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{geocoder: geocoder, routes: routes, logger: logger}
}

// Search proxies the geocoder. Failures degrade to an empty suggestion
// list rather than an error page.
func (h *LocationHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"data": []domain.Location{}})
		return
	}

	locations, err := h.geocoder.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Warn("geocode search failed", zap.String("query", query), zap.Error(err))
		locations = nil
	}
	if locations == nil {
		locations = []domain.Location{}
	}

	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// Route returns the driving route between two points, falling back to a
// straight haversine estimate when the routing service is unreachable.
func (h *LocationHandler) Route(c *gin.Context) {
	from, ok := parseCoord(c, "from_lat", "from_lng")
	if !ok {
		return
	}
	to, ok := parseCoord(c, "to_lat", "to_lng")
	if !ok {
		return
	}

	route, err := h.routes.Route(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Warn("route lookup failed, using haversine", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"distance_km": geo.DistanceKm(from, to),
			"geometry":    []domain.Coordinate{from, to},
			"estimated":   true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distance_km": route.DistanceKm,
		"geometry":    route.Geometry,
		"estimated":   false,
	})
}

func parseCoord(c *gin.Context, latKey, lngKey string) (domain.Coordinate, bool) {
	lat, latErr := strconv.ParseFloat(c.Query(latKey), 64)
	lng, lngErr := strconv.ParseFloat(c.Query(lngKey), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Lat: lat, Lng: lng}, true
}
