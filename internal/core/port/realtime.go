package port

// RealtimeFeed delivers row-change notifications for a user's bookings.
// The payload carries no delta; subscribers refetch on every call.
type RealtimeFeed interface {
	Subscribe(userID string, fn func()) (unsubscribe func())
}

// Notifier pushes realtime messages out to connected clients.
type Notifier interface {
	NotifyBookingChanged(userID string)
	SendTripRequest(driverID string, payload any)
	SendTripStatus(userID string, payload any)
}
