package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"larisa/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Transactor runs a unit of work inside one database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

// WithTimeout derives a context bounded by the configured query timeout.
func (c *Connection) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.QueryTimeout)
}

// WithTx commits when fn returns nil and rolls back otherwise. The whole
// transaction shares one query timeout; running out of it yields a Timeout failure.
func (c *Connection) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	ctx, cancel := c.WithTimeout(ctx)
	defer cancel()

	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return timedOut(ctx, fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return timedOut(ctx, err)
	}

	if err = tx.Commit(); err != nil {
		return timedOut(ctx, fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func timedOut(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return failure.Timeout("database transaction timed out") //nolint:wrapcheck
	}

	return failure.FromContext(err, "database transaction timed out") //nolint:wrapcheck
}
