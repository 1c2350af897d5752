package service_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	bookingModel "larisa/internal/domains/booking/model"
	roomModel "larisa/internal/domains/room/model"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"

	"github.com/jmoiron/sqlx"
)

// store is an in-memory stand-in for the rooms and bookings tables. WithTx
// restores the previous state when the unit of work fails.
type store struct {
	mu       sync.Mutex
	rooms    map[string]roomModel.Room
	bookings map[string]bookingModel.Booking
}

func newStore(rooms ...roomModel.Room) *store {
	s := &store{rooms: map[string]roomModel.Room{}, bookings: map[string]bookingModel.Booking{}}
	for _, room := range rooms {
		if room.Availability == constant.Empty {
			room.Availability = constant.AvailabilityAvailable
		}

		s.rooms[room.ID] = room
	}

	return s
}

func (s *store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, bookings := maps.Clone(s.rooms), maps.Clone(s.bookings)

	if err := fn(ctx, nil); err != nil {
		s.rooms, s.bookings = rooms, bookings

		return err
	}

	return nil
}

// consistent reports whether every room satisfies the link invariant.
func (s *store) consistent() error {
	for _, room := range s.rooms {
		linked := room.LinkedBookingID != nil
		if linked != (room.Availability == constant.AvailabilityNotAvailable) {
			return fmt.Errorf("room %s: availability %s with link %v", room.ID, room.Availability, room.LinkedBookingID)
		}

		if linked {
			booking, ok := s.bookings[*room.LinkedBookingID]
			if !ok || booking.RoomID != room.ID {
				return fmt.Errorf("room %s links missing booking %s", room.ID, *room.LinkedBookingID)
			}
		}
	}

	return nil
}

func matches(fields map[string]any, filter any) bool {
	switch f := filter.(type) {
	case gDto.FilterGroup:
		for _, inner := range f.Filters {
			ok := matches(fields, inner)
			if f.Operator == gDto.FilterGroupOperatorOr && ok {
				return true
			}

			if f.Operator != gDto.FilterGroupOperatorOr && !ok {
				return false
			}
		}

		return f.Operator != gDto.FilterGroupOperatorOr || len(f.Filters) == 0
	case gDto.Filter:
		value := fields[f.Field]

		switch f.Operator {
		case gDto.FilterOperatorEq:
			return fmt.Sprint(value) == fmt.Sprint(f.Value)
		case gDto.FilterOperatorGreaterEq:
			return value.(float64) >= f.Value.(float64)
		case gDto.FilterOperatorLessEq:
			return value.(float64) <= f.Value.(float64)
		}
	}

	return false
}

func roomFields(room roomModel.Room) map[string]any {
	var linked any
	if room.LinkedBookingID != nil {
		linked = *room.LinkedBookingID
	}

	return map[string]any{
		roomModel.FieldID:              room.ID,
		roomModel.FieldPrice:           room.Price,
		roomModel.FieldEmail:           room.Email,
		roomModel.FieldAvailability:    room.Availability,
		roomModel.FieldLinkedBookingID: linked,
	}
}

func bookingFields(booking bookingModel.Booking) map[string]any {
	return map[string]any{
		bookingModel.FieldID:     booking.ID,
		bookingModel.FieldRoomID: booking.RoomID,
		bookingModel.FieldEmail:  booking.Email,
	}
}

type roomStore struct{ *store }

func (r roomStore) Insert(_ context.Context, room roomModel.Room) error {
	r.rooms[room.ID] = room

	return nil
}

func (r roomStore) Upsert(_ context.Context, room roomModel.Room, _ ...string) (bool, error) {
	_, exists := r.rooms[room.ID]
	r.rooms[room.ID] = room

	return !exists, nil
}

func (r roomStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
	for _, room := range r.rooms {
		if matches(roomFields(room), filter) {
			return room, nil
		}
	}

	return roomModel.Room{}, nil
}

func (r roomStore) GetTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (roomModel.Room, error) {
	return r.Get(ctx, filter, columns...)
}

func (r roomStore) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
	res := []roomModel.Room{}

	for _, room := range r.rooms {
		if matches(roomFields(room), filter) {
			res = append(res, room)
		}
	}

	slices.SortFunc(res, func(a, b roomModel.Room) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})

	return res, nil
}

func (r roomStore) Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	room, err := r.Get(ctx, filter)

	return room.ID != constant.Empty, err
}

func (r roomStore) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	rooms, err := r.GetAll(ctx, gDto.QueryParams{}, filter)

	return len(rooms), err
}

func (r roomStore) Update(context.Context, map[string]any, gDto.FilterGroup) (int64, error) {
	return 0, nil
}

func (r roomStore) Delete(_ context.Context, filter gDto.FilterGroup) (int64, error) {
	var deleted int64

	for id, room := range r.rooms {
		if matches(roomFields(room), filter) {
			delete(r.rooms, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r roomStore) Occupy(_ context.Context, _ *sqlx.Tx, roomID, bookingID string) (int64, error) {
	room, ok := r.rooms[roomID]
	if !ok || !room.IsAvailable() {
		return 0, nil
	}

	room.Availability = constant.AvailabilityNotAvailable
	room.LinkedBookingID = &bookingID
	r.rooms[roomID] = room

	return 1, nil
}

func (r roomStore) Release(_ context.Context, _ *sqlx.Tx, bookingID string) (int64, error) {
	var modified int64

	for id, room := range r.rooms {
		if room.LinkedBookingID != nil && *room.LinkedBookingID == bookingID {
			room.Availability = constant.AvailabilityAvailable
			room.LinkedBookingID = nil
			r.rooms[id] = room
			modified++
		}
	}

	return modified, nil
}

type bookingStore struct{ *store }

func (b bookingStore) InsertTx(_ context.Context, _ *sqlx.Tx, booking bookingModel.Booking) error {
	b.bookings[booking.ID] = booking

	return nil
}

func (b bookingStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (bookingModel.Booking, error) {
	for _, booking := range b.bookings {
		if matches(bookingFields(booking), filter) {
			return booking, nil
		}
	}

	return bookingModel.Booking{}, nil
}

func (b bookingStore) GetTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (bookingModel.Booking, error) {
	return b.Get(ctx, filter, columns...)
}

func (b bookingStore) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
	res := []bookingModel.Booking{}

	for _, booking := range b.bookings {
		if matches(bookingFields(booking), filter) {
			res = append(res, booking)
		}
	}

	return res, nil
}

func (b bookingStore) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	bookings, err := b.GetAll(ctx, gDto.QueryParams{}, filter)

	return len(bookings), err
}

func (b bookingStore) Update(context.Context, map[string]any, gDto.FilterGroup) (int64, error) {
	return 0, nil
}

func (b bookingStore) DeleteTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (int64, error) {
	var deleted int64

	for id, booking := range b.bookings {
		if matches(bookingFields(booking), filter) {
			delete(b.bookings, id)
			deleted++
		}
	}

	return deleted, nil
}

func (b bookingStore) LatestForRoom(_ context.Context, _ *sqlx.Tx, roomID string) (bookingModel.Booking, error) {
	var latest bookingModel.Booking

	for _, booking := range b.bookings {
		if booking.RoomID == roomID && !booking.CreatedAt.Before(latest.CreatedAt) {
			latest = booking
		}
	}

	return latest, nil
}
