package domain

import "fmt"

// CurrentLocationID marks a location produced by device geolocation
// rather than a geocoder result.
const CurrentLocationID = "current"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Address string     `json:"address"`
	Coord   Coordinate `json:"coordinates"`
}

// CurrentLocation builds the sentinel location for a device-provided position.
func CurrentLocation(c Coordinate) Location {
	return Location{
		ID:      CurrentLocationID,
		Name:    "Vị trí hiện tại",
		Address: fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng),
		Coord:   c,
	}
}
