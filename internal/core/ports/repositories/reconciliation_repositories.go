package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// ReconciliationReader defines read operations for sessions and the ledger they reconcile against.
type ReconciliationReader interface {
	// FindSessionByID retrieves a session with its statement lines.
	FindSessionByID(ctx context.Context, tenantID, sessionID string) (*domain.ReconciliationSession, error)

	// ListLedgerLines returns every journal line on the account dated on or before upTo.
	ListLedgerLines(ctx context.Context, tenantID, accountID string, upTo time.Time) ([]domain.LedgerLine, error)

	// ListEntryNets returns each journal entry's signed net on the account dated on or before upTo.
	ListEntryNets(ctx context.Context, tenantID, accountID string, upTo time.Time) ([]domain.EntryNet, error)
}

// ReconciliationWriter defines write operations. All of them require an in_progress session.
type ReconciliationWriter interface {
	SaveSession(ctx context.Context, session domain.ReconciliationSession) error

	// AddStatementLines appends lines; duplicate external ids within the session are apperrors.ErrDuplicate.
	AddStatementLines(ctx context.Context, tenantID, sessionID string, lines []domain.StatementLine) error

	// MatchStatementLine pairs one unmatched line with a journal entry not yet matched in the session.
	MatchStatementLine(ctx context.Context, tenantID, sessionID, lineID, journalEntryID, actorID string, at time.Time) (*domain.StatementLine, error)

	// CompleteSession stores the computed balances and flips the status to completed.
	CompleteSession(ctx context.Context, session domain.ReconciliationSession) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
