package dto

import (
	"larisa/internal/domains/room/model"
	"larisa/shared"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	gModel "larisa/shared/model"
	"larisa/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Description string  `json:"roomDesc" validate:"required,max=2000"`
	Price       float64 `json:"price"    validate:"gte=0"`
	Size        string  `json:"size"     validate:"omitempty,max=100"`
	Offer       string  `json:"offer"    validate:"omitempty,max=100"`
	Image       string  `json:"image"    validate:"omitempty,url"`
	Email       string  `json:"email"    validate:"omitempty,email"`
}

// ToModel creates an available room with no booking link. The owner defaults
// to the authenticated user when the body carries no email.
func (c *CreateRoomRequest) ToModel(user string) model.Room {
	email := c.Email
	if email == constant.Empty {
		email = user
	}

	return model.Room{
		ID:           uuid.NewString(),
		Description:  c.Description,
		Price:        c.Price,
		Size:         c.Size,
		Offer:        c.Offer,
		Image:        c.Image,
		Email:        email,
		Availability: constant.AvailabilityAvailable,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}
}

// UpdateRoomRequest carries the editable fields of a room. Availability is
// owned by the booking transitions and cannot be set here.
type UpdateRoomRequest struct {
	Description string  `json:"roomDesc" validate:"required,max=2000"`
	Price       float64 `json:"price"    validate:"gte=0"`
	Size        string  `json:"size"     validate:"omitempty,max=100"`
	Offer       string  `json:"offer"    validate:"omitempty,max=100"`
	Image       string  `json:"image"    validate:"omitempty,url"`
	Email       string  `json:"email"    validate:"omitempty,email"`
}

func (u *UpdateRoomRequest) ToFields(user string) map[string]any {
	return map[string]any{
		model.FieldDescription:   u.Description,
		model.FieldPrice:         u.Price,
		model.FieldSize:          u.Size,
		model.FieldOffer:         u.Offer,
		model.FieldImage:         u.Image,
		model.FieldEmail:         u.Email,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

// ToModel builds the row inserted when an upsert finds no room with id.
func (u *UpdateRoomRequest) ToModel(id, user string) model.Room {
	return model.Room{
		ID:           id,
		Description:  u.Description,
		Price:        u.Price,
		Size:         u.Size,
		Offer:        u.Offer,
		Image:        u.Image,
		Email:        u.Email,
		Availability: constant.AvailabilityAvailable,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}
}

type RoomResponse struct {
	ID              string  `json:"_id"`
	Description     string  `json:"roomDesc"`
	Price           float64 `json:"price"`
	Size            string  `json:"size"`
	Offer           string  `json:"offer"`
	Image           string  `json:"image"`
	Email           string  `json:"email"`
	Availability    string  `json:"availability"`
	LinkedBookingID *string `json:"newId,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Description = model.Description
	r.Price = model.Price
	r.Size = model.Size
	r.Offer = model.Offer
	r.Image = model.Image
	r.Email = model.Email
	r.Availability = model.Availability
	r.LinkedBookingID = model.LinkedBookingID
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResponse struct {
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type ImageResponse struct {
	Image string `db:"image" json:"image"`
}
