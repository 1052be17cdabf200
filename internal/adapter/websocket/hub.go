package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TripActions is what the hub needs from the driver side of the core.
type TripActions interface {
	Accept(ctx context.Context, driverID, bookingID uuid.UUID) error
	Reject(ctx context.Context, driverID, bookingID uuid.UUID) error
}

type outbound struct {
	userID string
	data   []byte
}

// Hub fans realtime messages out to connected clients and doubles as the
// in-process booking-change feed: trackers subscribe here, riders and
// drivers attach over websocket.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	outbound   chan outbound

	mu          sync.Mutex
	subscribers map[string]map[int]func()
	nextSubID   int

	presence port.DriverPresence
	svc      TripActions
	logger   *zap.Logger
}

func NewHub(presence port.DriverPresence, logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		outbound:    make(chan outbound, 64),
		subscribers: make(map[string]map[int]func()),
		presence:    presence,
		logger:      logger,
	}
}

// SetService breaks the hub <-> driver-service construction cycle.
func (h *Hub) SetService(svc TripActions) {
	h.svc = svc
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.userID] = client
		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
		case msg := <-h.outbound:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				close(client.send)
				delete(h.clients, msg.userID)
			}
		}
	}
}

func (h *Hub) HandleMessage(client *Client, message []byte) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		h.logger.Warn("invalid ws message", zap.String("user_id", client.userID), zap.Error(err))
		return
	}

	switch env.Type {
	case MsgLocationUpdate:
		var loc LocationPayload
		if err := json.Unmarshal(env.Payload, &loc); err != nil {
			return
		}
		if err := h.presence.SetOnline(context.Background(), client.userID, domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}); err != nil {
			h.logger.Warn("location update failed", zap.String("driver_id", client.userID), zap.Error(err))
		}
	case MsgTripResponse:
		if h.svc == nil {
			return
		}
		var resp TripResponsePayload
		if err := json.Unmarshal(env.Payload, &resp); err != nil {
			return
		}
		driverID, err := uuid.Parse(client.userID)
		if err != nil {
			return
		}
		bookingID, err := uuid.Parse(resp.BookingID)
		if err != nil {
			return
		}

		switch resp.Action {
		case "ACCEPT":
			if err := h.svc.Accept(context.Background(), driverID, bookingID); err != nil {
				h.logger.Warn("accept failed", zap.String("driver_id", client.userID), zap.Error(err))
			}
		case "REJECT":
			if err := h.svc.Reject(context.Background(), driverID, bookingID); err != nil {
				h.logger.Warn("reject failed", zap.String("driver_id", client.userID), zap.Error(err))
			}
		}
	}
}

// Subscribe registers an in-process listener for a user's booking
// changes. The returned func removes the subscription; safe to call
// after the hub delivered its last notification.
func (h *Hub) Subscribe(userID string, fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSubID++
	id := h.nextSubID
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[int]func())
	}
	h.subscribers[userID][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], id)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}
}

// NotifyBookingChanged pushes a change notification to the user's ws
// connection and fires in-process subscribers. No delta is carried.
func (h *Hub) NotifyBookingChanged(userID string) {
	h.push(userID, MsgBookingUpdate, BookingChangePayload{UserID: userID})

	h.mu.Lock()
	fns := make([]func(), 0, len(h.subscribers[userID]))
	for _, fn := range h.subscribers[userID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (h *Hub) SendTripRequest(driverID string, payload any) {
	h.push(driverID, MsgTripRequest, payload)
}

func (h *Hub) SendTripStatus(userID string, payload any) {
	h.push(userID, MsgTripStatus, payload)
}

func (h *Hub) push(userID string, msgType MessageType, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("marshal ws payload", zap.Error(err))
		return
	}
	data, err := json.Marshal(Envelope{Type: msgType, Payload: raw})
	if err != nil {
		return
	}

	select {
	case h.outbound <- outbound{userID: userID, data: data}:
	default:
		h.logger.Warn("outbound ws queue full, dropping message", zap.String("user_id", userID))
	}
}
