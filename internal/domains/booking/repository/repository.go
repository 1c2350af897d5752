package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"larisa/infras/otel"
	"larisa/infras/postgres"
	"larisa/internal/domains/booking/model"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
	gRepo "larisa/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int64, error)

	// LatestForRoom returns the newest booking of a room, or the zero value.
	LatestForRoom(ctx context.Context, sqltx *sqlx.Tx, roomID string) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const queryLatestForRoom = `SELECT id, room_id, email, stay_date, availability, created_at, modified_at, created_by, modified_by
FROM bookings WHERE room_id = $1 ORDER BY created_at DESC LIMIT 1`

func (r *repositoryImpl) LatestForRoom(ctx context.Context, sqltx *sqlx.Tx, roomID string) (booking model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LatestForRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryLatestForRoom)

	err = sqltx.GetContext(ctx, &booking, queryLatestForRoom, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		return booking, failure.FromContext(fmt.Errorf("failed to get latest booking: %w", err), "booking query timed out") //nolint:wrapcheck
	}

	return booking, nil
}
