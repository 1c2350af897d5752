package dto

import (
	"larisa/internal/domains/booking/model"
	"larisa/shared"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"time"
)

// UpdateBookingRequest changes the stay date, the only field a booking may
// change after creation.
type UpdateBookingRequest struct {
	Date string `json:"date" validate:"required,staydate"`
}

func (u *UpdateBookingRequest) StayDate() (time.Time, error) {
	return model.ParseStayDate(u.Date) //nolint:wrapcheck
}

type BookingResponse struct {
	ID           string `json:"_id"`
	RoomID       string `json:"roomId"`
	Email        string `json:"email"`
	Date         string `json:"date"`
	Availability string `json:"availability"`
	NewID        string `json:"newId"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Email = model.Email
	r.Date = model.StayDate.Format(constant.StayDateFormat)
	r.Availability = model.Availability
	r.NewID = model.ID
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type UpdateResponse struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
