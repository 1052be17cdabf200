package websocket

import "encoding/json"

type MessageType string

const (
	// inbound from drivers
	MsgLocationUpdate MessageType = "LOCATION_UPDATE"
	MsgTripResponse   MessageType = "TRIP_RESPONSE"

	// outbound
	MsgTripRequest   MessageType = "TRIP_REQUEST"
	MsgBookingUpdate MessageType = "BOOKING_UPDATE"
	MsgTripStatus    MessageType = "TRIP_STATUS"
)

type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TripResponsePayload struct {
	BookingID string `json:"booking_id"`
	Action    string `json:"action"`
}

type BookingChangePayload struct {
	UserID string `json:"user_id"`
}

type TripStatusPayload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Countdown int    `json:"countdown"`
}
