package dto

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	bookingModel "larisa/internal/domains/booking/model"
	"larisa/shared/constant"
	gModel "larisa/shared/model"
	"larisa/shared/timezone"

	"github.com/google/uuid"
)

type BookRequest struct {
	RoomID string `json:"roomId" validate:"required,uuid"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Date   string `json:"date"   validate:"required,staydate"`
}

// ToModel builds the booking row. The renter defaults to the authenticated user.
func (b *BookRequest) ToModel(user string) (bookingModel.Booking, error) {
	stayDate, err := bookingModel.ParseStayDate(b.Date)
	if err != nil {
		return bookingModel.Booking{}, err //nolint:wrapcheck
	}

	email := b.Email
	if email == constant.Empty {
		email = user
	}

	return bookingModel.Booking{
		ID:           uuid.NewString(),
		RoomID:       b.RoomID,
		Email:        email,
		StayDate:     stayDate,
		Availability: constant.AvailabilityNotAvailable,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}, nil
}

type BookResponse struct {
	InsertedID string `json:"insertedId"`
}

type CancelResponse struct {
	DeletedCount  int64 `json:"deletedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// MarkUnavailableRequest names the booking that holds the room. NewID wins
// over ID; with neither set the newest booking of the room is used.
type MarkUnavailableRequest struct {
	ID    string `json:"_id"   validate:"omitempty,uuid"`
	NewID string `json:"newId" validate:"omitempty,uuid"`
}

func (m *MarkUnavailableRequest) BookingID() string {
	if m == nil {
		return constant.Empty
	}

	if m.NewID != constant.Empty {
		return m.NewID
	}

	return m.ID
}

type MarkUnavailableResponse struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// PriceRange is an inclusive, validated price window.
type PriceRange struct {
	Min float64
	Max float64
}

var (
	ErrPriceRequired = errors.New("minPrice and maxPrice are required")
	ErrPriceInverted = errors.New("minPrice must not exceed maxPrice")
)

// ParsePriceRange never fills in a missing bound.
func ParsePriceRange(minRaw, maxRaw string) (PriceRange, error) {
	minRaw, maxRaw = strings.TrimSpace(minRaw), strings.TrimSpace(maxRaw)
	if minRaw == constant.Empty || maxRaw == constant.Empty {
		return PriceRange{}, ErrPriceRequired
	}

	minPrice, err := parsePrice(constant.RequestParamMin, minRaw)
	if err != nil {
		return PriceRange{}, err
	}

	maxPrice, err := parsePrice(constant.RequestParamMax, maxRaw)
	if err != nil {
		return PriceRange{}, err
	}

	if minPrice > maxPrice {
		return PriceRange{}, ErrPriceInverted
	}

	return PriceRange{Min: minPrice, Max: maxPrice}, nil
}

func parsePrice(name, raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%s must be a number", name)
	}

	if price < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}

	return price, nil
}
