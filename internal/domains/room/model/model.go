package model

import "larisa/shared/model"

const (
	CacheGet    = "room:get"
	CacheGetAll = "room:gets"
	CacheCount  = "room:count"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID              = "id"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldSize            = "size"
	FieldOffer           = "offer"
	FieldImage           = "image"
	FieldEmail           = "email"
	FieldAvailability    = "availability"
	FieldLinkedBookingID = "linked_booking_id"
)

// EditableColumns are the columns a room update may overwrite. Availability
// and the booking link only move through booking transitions.
var EditableColumns = []string{
	FieldDescription,
	FieldPrice,
	FieldSize,
	FieldOffer,
	FieldImage,
	FieldEmail,
	"modified_at",
	"modified_by",
}

type Room struct {
	ID              string  `db:"id"`
	Description     string  `db:"description"`
	Price           float64 `db:"price"`
	Size            string  `db:"size"`
	Offer           string  `db:"offer"`
	Image           string  `db:"image"`
	Email           string  `db:"email"`
	Availability    string  `db:"availability"`
	LinkedBookingID *string `db:"linked_booking_id"`
	model.Metadata
}

func (r Room) IsAvailable() bool {
	return r.Availability == "available"
}
