package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods
type PeriodReader interface {
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)

	// ListNonOpenPeriods returns the soft-closed and closed windows used by validation.
	ListNonOpenPeriods(ctx context.Context, tenantID string) ([]domain.PeriodWindow, error)

	// HasOverlappingPeriod reports whether [start, end] intersects an existing period.
	HasOverlappingPeriod(ctx context.Context, tenantID string, start, end time.Time) (bool, error)
}

// ChecklistReader counts the outstanding items of a date range.
type ChecklistReader interface {
	CountTransactionSetsByStatus(ctx context.Context, tenantID string, status domain.TransactionSetStatus, from, to time.Time) (int, error)
	CountUnmatchedStatementLines(ctx context.Context, tenantID string, from, to time.Time) (int, error)
}

// PeriodWriter defines write operations for accounting periods
type PeriodWriter interface {
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriodStatus persists status, checklist and close stamps only if the period
	// is still in from. Otherwise it returns apperrors.ErrConflict.
	UpdatePeriodStatus(ctx context.Context, period domain.AccountingPeriod, from domain.PeriodStatus) error
}

// PeriodRepositoryFacade combines all period repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	ChecklistReader
	PeriodWriter
}
