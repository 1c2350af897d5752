package service

import (
	"context"
	"fmt"
	"net/http"

	"larisa/config"
	"larisa/infras/kafka"
	"larisa/infras/otel"
	"larisa/infras/postgres"
	"larisa/infras/prometheus"
	"larisa/internal/domains/availability/model"
	"larisa/internal/domains/availability/model/dto"
	bookingModel "larisa/internal/domains/booking/model"
	bookingRepo "larisa/internal/domains/booking/repository"
	roomModel "larisa/internal/domains/room/model"
	roomDto "larisa/internal/domains/room/model/dto"
	roomRepo "larisa/internal/domains/room/repository"
	"larisa/shared"
	"larisa/shared/cache"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
	"larisa/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	argMinPrice            = "min_price"
	argMaxPrice            = "max_price"
	argCurrentAvailability = "current_availability"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

// Availability moves rooms between available and notAvailable. Every
// transition touches the room and its booking in a single transaction, so a
// room is notAvailable exactly when it links a live booking.
type Availability interface {
	Book(ctx context.Context, req dto.BookRequest) (dto.BookResponse, error)
	Cancel(ctx context.Context, bookingID string) (dto.CancelResponse, error)
	MarkUnavailable(ctx context.Context, roomID string, req *dto.MarkUnavailableRequest) (dto.MarkUnavailableResponse, error)
	Filter(ctx context.Context, priceRange dto.PriceRange) ([]roomDto.RoomResponse, error)
}

type serviceImpl struct {
	tx          postgres.Transactor
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	metrics     *prometheus.Metrics
	publisher   kafka.Publisher
}

func New(
	tx postgres.Transactor,
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics *prometheus.Metrics,
	publisher kafka.Publisher,
) Availability {
	return &serviceImpl{
		tx:          tx,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		metrics:     metrics,
		publisher:   publisher,
	}
}

func (s *serviceImpl) Book(ctx context.Context, req dto.BookRequest) (res dto.BookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.observe(prometheus.TransitionBook, err, true) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if !room.IsAvailable() {
			return failure.Conflict("room is not available") // nolint:wrapcheck
		}

		if err := s.bookingRepo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		modified, err := s.roomRepo.Occupy(ctx, tx, room.ID, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to mark room unavailable: %w", err)
		}

		if modified == 0 {
			return failure.Conflict("room is not available") // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("roomId", req.RoomID).Msg("failed to book room")

		return res, err
	}

	s.afterTransition(ctx, model.EventRoomBooked, req.RoomID, booking.ID)

	return dto.BookResponse{InsertedID: booking.ID}, nil
}

// Cancel deletes the booking and frees the room that links it. Cancelling an
// unknown or already cancelled booking succeeds with zero counts.
func (s *serviceImpl) Cancel(ctx context.Context, bookingID string) (res dto.CancelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.observe(prometheus.TransitionCancel, err, res.DeletedCount+res.ModifiedCount > 0) }()

	var roomID string

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.bookingRepo.GetTx(ctx, tx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		roomID = booking.RoomID

		res.DeletedCount, err = s.bookingRepo.DeleteTx(ctx, tx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		res.ModifiedCount, err = s.roomRepo.Release(ctx, tx, bookingID)
		if err != nil {
			return fmt.Errorf("failed to release room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingId", bookingID).Msg("failed to cancel booking")

		return dto.CancelResponse{}, err
	}

	if res.ModifiedCount > 0 {
		s.afterTransition(ctx, model.EventRoomReleased, roomID, bookingID)
	}

	return res, nil
}

// MarkUnavailable links a room to one of its bookings. Repeating the call for
// the booking that already holds the room matches without modifying.
func (s *serviceImpl) MarkUnavailable(ctx context.Context, roomID string, req *dto.MarkUnavailableRequest) (res dto.MarkUnavailableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.MarkUnavailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.observe(prometheus.TransitionMarkUnavailable, err, res.ModifiedCount > 0) }()

	var bookingID string

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		booking, err := s.resolveBooking(ctx, tx, roomID, req.BookingID())
		if err != nil {
			return err
		}

		bookingID = booking.ID

		if !room.IsAvailable() {
			if room.LinkedBookingID != nil && *room.LinkedBookingID == booking.ID {
				res.MatchedCount = 1

				return nil
			}

			return failure.Conflict("room is held by another booking") // nolint:wrapcheck
		}

		modified, err := s.roomRepo.Occupy(ctx, tx, roomID, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to mark room unavailable: %w", err)
		}

		if modified == 0 {
			return failure.Conflict("room is not available") // nolint:wrapcheck
		}

		res.MatchedCount, res.ModifiedCount = 1, modified

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("roomId", roomID).Msg("failed to mark room unavailable")

		return dto.MarkUnavailableResponse{}, err
	}

	if res.ModifiedCount > 0 {
		s.afterTransition(ctx, model.EventRoomBooked, roomID, bookingID)
	}

	return res, nil
}

func (s *serviceImpl) resolveBooking(ctx context.Context, tx *sqlx.Tx, roomID, bookingID string) (booking bookingModel.Booking, err error) {
	if bookingID == constant.Empty {
		booking, err = s.bookingRepo.LatestForRoom(ctx, tx, roomID)
	} else {
		booking, err = s.bookingRepo.GetTx(ctx, tx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	}

	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.RoomID != roomID {
		return booking, failure.BadRequestFromString("booking does not belong to this room") // nolint:wrapcheck
	}

	return booking, nil
}

// Filter lists available rooms priced within the inclusive range, cheapest first.
func (s *serviceImpl) Filter(ctx context.Context, priceRange dto.PriceRange) (res []roomDto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Filter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if priceRange.Min < 0 || priceRange.Max < 0 || priceRange.Min > priceRange.Max {
		return nil, failure.BadRequest(dto.ErrPriceInverted) // nolint:wrapcheck
	}

	filter := gDto.And(
		gDto.Filter{
			ArgName:  argCurrentAvailability,
			Field:    roomModel.FieldAvailability,
			Value:    constant.AvailabilityAvailable,
			Operator: gDto.FilterOperatorEq,
		},
		gDto.Filter{ArgName: argMinPrice, Field: roomModel.FieldPrice, Value: priceRange.Min, Operator: gDto.FilterOperatorGreaterEq},
		gDto.Filter{ArgName: argMaxPrice, Field: roomModel.FieldPrice, Value: priceRange.Max, Operator: gDto.FilterOperatorLessEq},
	)
	params := gDto.QueryParams{SortBy: roomModel.FieldPrice, SortDir: gDto.SortDirAsc}

	rooms, err := s.roomRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to filter rooms")

		return nil, fmt.Errorf("failed to filter rooms: %w", err)
	}

	res = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room)
	}

	return res, nil
}

func (s *serviceImpl) observe(transition string, err error, applied bool) {
	switch {
	case failure.Is(err, http.StatusConflict):
		s.metrics.ObserveTransition(transition, prometheus.OutcomeConflict)
	case err != nil:
		s.metrics.ObserveTransition(transition, prometheus.OutcomeError)
	case applied:
		s.metrics.ObserveTransition(transition, prometheus.OutcomeApplied)
	default:
		s.metrics.ObserveTransition(transition, prometheus.OutcomeNoop)
	}
}

// afterTransition runs once the transaction has committed. Neither cache
// invalidation nor event delivery can undo the transition, so failures are
// logged. Room caches are dropped before returning so the caller's next read
// sees the new availability. Only the event is published in the background.
func (s *serviceImpl) afterTransition(ctx context.Context, eventType, roomID, bookingID string) {
	c := context.WithoutCancel(ctx)

	if roomID != constant.Empty {
		if err := s.cache.Delete(c, shared.BuildCacheKey(roomModel.CacheGet, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, roomModel.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, roomModel.CacheCount)

	event := model.Event{
		Type:       eventType,
		RoomID:     roomID,
		BookingID:  bookingID,
		OccurredAt: timezone.Now(),
	}

	go func() {
		if err := s.publisher.Publish(c, kafka.Message{Key: roomID, Value: event}); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("roomId", roomID).Msg("failed to publish availability event")
		}
	}()
}
