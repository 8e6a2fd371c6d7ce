package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
)

// TxFn is the unit of work run by RunInTransaction. Returning an error rolls
// the transaction back; returning nil commits it.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a transaction at the driver's default isolation
// level (READ COMMITTED on PostgreSQL).
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return RunInTransactionWithOptions(ctx, db, nil, fn)
}

// RunInTransactionWithOptions is RunInTransaction with explicit options.
// Errors returned by fn are passed through unwrapped so callers can still
// classify them with errors.Is.
func RunInTransactionWithOptions(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) (err error) {
	log := logger.FromContextOrDefault(ctx, slog.Default()).With(slog.String("component", "tx"))

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("begin failed", slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed",
				slog.String("error", redact.Error(rbErr)),
				slog.Bool("panicked", p != nil))
			if p == nil {
				err = fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
			}
		}
		if p != nil {
			log.Error("rolled back after panic", slog.Any("panic", p))
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		log.Debug("rolling back", slog.String("error", redact.Error(err)))
		return err
	}

	if err = tx.Commit(); err != nil {
		// A failed commit leaves nothing to roll back.
		committed = true
		if isTransientCommitError(err) {
			log.Debug("commit lost a race", slog.String("error", redact.Error(err)))
			return fmt.Errorf("failed to commit transaction: %w: %w", ErrRetryable, err)
		}
		log.Error("commit failed", slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// isTransientCommitError reports whether a commit failed with a
// serialization failure (40001) or deadlock (40P01). Drivers expose the
// code through SQLState, as pgconn.PgError does.
func isTransientCommitError(err error) bool {
	var coded interface{ SQLState() string }
	if !errors.As(err, &coded) {
		return false
	}
	switch coded.SQLState() {
	case "40001", "40P01":
		return true
	}
	return false
}
