package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/jackc/pgx/v5"
)

const (
	insertOrFetchAttempts = 3
	insertOrFetchBackoff  = 20 * time.Millisecond
)

// insertOrFetchQuery describes a row identified by a natural unique key.
// insertSQL must be INSERT ... ON CONFLICT DO NOTHING RETURNING <cols> and
// selectSQL must return the same columns for the natural key.
type insertOrFetchQuery[T any] struct {
	insertSQL  string
	insertArgs []any
	selectSQL  string
	selectArgs []any
	scan       func(row pgx.Row) (T, error)
}

// insertOrFetch returns the row for the natural key, creating it if needed.
// created reports whether this call inserted the row. When the conflicting row
// belongs to a transaction that is not yet visible the pair is retried.
func insertOrFetch[T any](ctx context.Context, q querier, spec insertOrFetchQuery[T]) (value T, created bool, err error) {
	var zero T
	for attempt := 0; attempt < insertOrFetchAttempts; attempt++ {
		value, err = spec.scan(q.QueryRow(ctx, spec.insertSQL, spec.insertArgs...))
		if err == nil {
			return value, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return zero, false, mapPgError(err, "insert-or-fetch insert failed")
		}

		value, err = spec.scan(q.QueryRow(ctx, spec.selectSQL, spec.selectArgs...))
		if err == nil {
			return value, false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return zero, false, mapPgError(err, "insert-or-fetch select failed")
		}

		select {
		case <-ctx.Done():
			return zero, false, ctx.Err()
		case <-time.After(insertOrFetchBackoff * time.Duration(attempt+1)):
		}
	}
	return zero, false, fmt.Errorf("%w: row neither inserted nor visible after %d attempts", apperrors.ErrConflict, insertOrFetchAttempts)
}
