package model

import "larisa/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	CacheGetAll = "review:gets"
	CacheCount  = "review:count"

	FieldID      = "id"
	FieldRoomID  = "room_id"
	FieldEmail   = "email"
	FieldName    = "name"
	FieldRating  = "rating"
	FieldComment = "comment"
)

type Review struct {
	ID      string `db:"id"`
	RoomID  string `db:"room_id"`
	Email   string `db:"email"`
	Name    string `db:"name"`
	Rating  int    `db:"rating"`
	Comment string `db:"comment"`
	model.Metadata
}
