package dto_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larisa/internal/domains/availability/model/dto"
	"larisa/shared/constant"
	"larisa/shared/failure"
	"larisa/shared/validator"
)

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		name    string
		min     string
		max     string
		want    dto.PriceRange
		wantErr string
	}{
		{name: "valid range", min: "100", max: "200", want: dto.PriceRange{Min: 100, Max: 200}},
		{name: "equal bounds", min: "150.5", max: "150.5", want: dto.PriceRange{Min: 150.5, Max: 150.5}},
		{name: "zero lower bound", min: "0", max: "10", want: dto.PriceRange{Min: 0, Max: 10}},
		{name: "missing min", min: "", max: "200", wantErr: dto.ErrPriceRequired.Error()},
		{name: "missing max", min: "100", max: " ", wantErr: dto.ErrPriceRequired.Error()},
		{name: "non numeric", min: "cheap", max: "200", wantErr: "minPrice must be a number"},
		{name: "not a number literal", min: "1", max: "NaN", wantErr: "maxPrice must be a number"},
		{name: "negative", min: "-1", max: "200", wantErr: "minPrice must not be negative"},
		{name: "inverted", min: "100", max: "50", wantErr: dto.ErrPriceInverted.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dto.ParsePriceRange(tt.min, tt.max)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookRequest_ToModel(t *testing.T) {
	req := dto.BookRequest{RoomID: "r1", Date: "2026-12-24"}

	booking, err := req.ToModel("guest@larisa.test")
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "guest@larisa.test", booking.Email)
	assert.Equal(t, constant.AvailabilityNotAvailable, booking.Availability)
	assert.Equal(t, "2026-12-24", booking.StayDate.Format(constant.StayDateFormat))

	req.Email = "other@larisa.test"
	booking, err = req.ToModel("guest@larisa.test")
	require.NoError(t, err)
	assert.Equal(t, "other@larisa.test", booking.Email)
	assert.Equal(t, "guest@larisa.test", booking.CreatedBy)
}

func TestMarkUnavailableRequest_BookingID(t *testing.T) {
	var empty *dto.MarkUnavailableRequest
	assert.Equal(t, "", empty.BookingID())
	assert.Equal(t, "b1", (&dto.MarkUnavailableRequest{ID: "b1"}).BookingID())
	assert.Equal(t, "b2", (&dto.MarkUnavailableRequest{ID: "b1", NewID: "b2"}).BookingID())
}

func TestRequestIDsMustBeUUIDs(t *testing.T) {
	const roomID = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"

	valid := dto.BookRequest{RoomID: roomID, Date: "2026-12-24"}
	require.NoError(t, validator.ValidateStruct(&valid))

	malformed := dto.BookRequest{RoomID: "abc", Date: "2026-12-24"}
	err := validator.ValidateStruct(&malformed)
	assert.True(t, failure.Is(err, http.StatusBadRequest))
	assert.EqualError(t, err, "roomId must be a valid id")

	assert.NoError(t, validator.ValidateStruct(&dto.MarkUnavailableRequest{}))
	assert.NoError(t, validator.ValidateStruct(&dto.MarkUnavailableRequest{NewID: roomID}))
	assert.EqualError(t, validator.ValidateStruct(&dto.MarkUnavailableRequest{NewID: "b1"}), "newId must be a valid id")
}
