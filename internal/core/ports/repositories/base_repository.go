package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is the unit-of-work contract shared by every pgx repository
// and the ledger store. Financial writes happen between one Begin and one Commit;
// Rollback after Commit is a no-op, so callers always defer it.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
