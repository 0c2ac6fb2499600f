package posting

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// Store persists the ledger. It is implemented only in this package so that no
// other package can write journal entries.
type Store interface {
	// WithinTx runs fn in one database transaction, committing only when fn returns nil.
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error

	FindJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
}

// LedgerTx is the set of operations available inside a posting transaction.
type LedgerTx interface {
	LockPostingIntent(ctx context.Context, tenantID, intentID string) (*domain.PostingIntent, error)
	LockTransactionSet(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error)

	// LatestRunHasErrors reports whether the set's most recent validation run holds an error issue.
	LatestRunHasErrors(ctx context.Context, tenantID, setID string) (bool, error)

	// ResolveMappings returns mapping key -> account id for the keys that exist.
	ResolveMappings(ctx context.Context, tenantID string, keys []string) (map[string]string, error)
	FindAccounts(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	FindJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	LockJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error
	InsertReversalLink(ctx context.Context, link domain.ReversalLink) error

	AcceptPostingIntent(ctx context.Context, tenantID, intentID, entryID string, at time.Time) error
	MarkTransactionSetPosted(ctx context.Context, tenantID, setID string, from domain.TransactionSetStatus, actorID string, at time.Time) error
}
