package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"larisa/infras/otel"
	"larisa/internal/domains/booking/model"
	"larisa/internal/domains/booking/model/dto"
	"larisa/internal/domains/booking/repository"
	"larisa/shared"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
	"larisa/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Booking serves reads and date changes. Creating and cancelling bookings
// moves room availability and lives in the availability service.
type Booking interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateDate(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.UpdateResponse, error)
}

type serviceImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otel otel.Otel) Booking {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateDate(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.UpdateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	stayDate, err := req.StayDate()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStayDate:      stayDate,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	affected, err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking date")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return dto.UpdateResponse{MatchedCount: affected, ModifiedCount: affected}, nil
}
