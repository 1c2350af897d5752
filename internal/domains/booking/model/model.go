package model

import (
	"errors"
	"larisa/shared/constant"
	"larisa/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldEmail        = "email"
	FieldStayDate     = "stay_date"
	FieldAvailability = "availability"
)

// Booking is a renter's claim on a room. Its ID is the back-reference stored
// on the room while the booking is live.
type Booking struct {
	ID           string    `db:"id"`
	RoomID       string    `db:"room_id"`
	Email        string    `db:"email"`
	StayDate     time.Time `db:"stay_date"`
	Availability string    `db:"availability"`
	model.Metadata
}

var ErrStayDate = errors.New("date must be formatted as YYYY-MM-DD")

func ParseStayDate(raw string) (time.Time, error) {
	stayDate, err := time.Parse(constant.StayDateFormat, raw)
	if err != nil {
		return time.Time{}, ErrStayDate
	}

	return stayDate, nil
}
