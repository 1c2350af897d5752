package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"larisa/infras/otel"
	"larisa/infras/postgres"
	"larisa/internal/domains/room/model"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	gRepo "larisa/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Upsert(ctx context.Context, model model.Room, updateColumns ...string) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)

	// Occupy links bookingID to an available room and reports whether a row changed.
	Occupy(ctx context.Context, sqltx *sqlx.Tx, roomID, bookingID string) (int64, error)
	// Release frees whichever room is linked to bookingID.
	Release(ctx context.Context, sqltx *sqlx.Tx, bookingID string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Occupy(ctx context.Context, sqltx *sqlx.Tx, roomID, bookingID string) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Occupy")
	defer scope.End()

	return r.UpdateTx(ctx, sqltx, map[string]any{
		model.FieldAvailability:    constant.AvailabilityNotAvailable,
		model.FieldLinkedBookingID: bookingID,
	}, gDto.And(
		gDto.Eq(model.FieldID, roomID),
		gDto.Filter{
			ArgName:  "current_availability",
			Field:    model.FieldAvailability,
			Value:    constant.AvailabilityAvailable,
			Operator: gDto.FilterOperatorEq,
		},
	))
}

func (r *repositoryImpl) Release(ctx context.Context, sqltx *sqlx.Tx, bookingID string) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Release")
	defer scope.End()

	return r.UpdateTx(ctx, sqltx, map[string]any{
		model.FieldAvailability:    constant.AvailabilityAvailable,
		model.FieldLinkedBookingID: nil,
	}, gDto.And(gDto.Filter{
		ArgName:  "booking_id",
		Field:    model.FieldLinkedBookingID,
		Value:    bookingID,
		Operator: gDto.FilterOperatorEq,
	}))
}
