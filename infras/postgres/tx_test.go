package postgres_test

import (
	"context"
	"errors"
	"larisa/infras/postgres"
	"larisa/shared/failure"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnection(t *testing.T, timeout time.Duration) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return postgres.NewFromDB(sqlx.NewDb(db, "sqlmock"), timeout), mock
}

func TestWithTxCommits(t *testing.T) {
	conn, mock := newConnection(t, time.Second)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := conn.WithTx(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE rooms SET availability = 'notAvailable'")

		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	conn, mock := newConnection(t, time.Second)

	mock.ExpectBegin()
	mock.ExpectRollback()

	conflict := failure.Conflict("room is not available")

	err := conn.WithTx(context.Background(), func(context.Context, *sqlx.Tx) error {
		return conflict
	})

	require.ErrorIs(t, err, conflict)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxTimeout(t *testing.T) {
	conn, mock := newConnection(t, 10*time.Millisecond)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := conn.WithTx(context.Background(), func(ctx context.Context, _ *sqlx.Tx) error {
		<-ctx.Done()

		return ctx.Err()
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, failure.GetCode(err))
}

func TestWithTxBeginFailure(t *testing.T) {
	conn, mock := newConnection(t, time.Second)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := conn.WithTx(context.Background(), func(context.Context, *sqlx.Tx) error {
		t.Fatal("unit of work must not run")

		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
