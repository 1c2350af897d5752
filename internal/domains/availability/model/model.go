package model

import "time"

const (
	EntityName = "availability"

	EventRoomBooked   = "room.booked"
	EventRoomReleased = "room.released"
)

// Event is published after a committed availability transition, keyed by room.
type Event struct {
	Type       string    `json:"type"`
	RoomID     string    `json:"roomId"`
	BookingID  string    `json:"bookingId"`
	OccurredAt time.Time `json:"occurredAt"`
}
