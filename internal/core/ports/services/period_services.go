package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
)

// ChecklistCalculator counts what is still outstanding in a date range.
type ChecklistCalculator interface {
	ComputeChecklist(ctx context.Context, tenantID string, from, to time.Time) (*domain.CloseChecklist, error)
}

// PeriodCloseSvc defines the close workflow
type PeriodCloseSvc interface {
	// SoftClose stores a checklist snapshot and moves an open period to soft_closed.
	// Outstanding items become warnings, never failures.
	SoftClose(ctx context.Context, identity domain.Identity, periodID string) (*domain.PeriodCloseResult, error)

	// Close hard-closes a soft-closed period once nothing blocks it. ADMIN only.
	Close(ctx context.Context, identity domain.Identity, periodID string) (*domain.PeriodCloseResult, error)
}

// PeriodSvc defines period management operations
type PeriodSvc interface {
	CreatePeriod(ctx context.Context, identity domain.Identity, req dto.CreatePeriodRequest) (*domain.AccountingPeriod, error)
	GetPeriod(ctx context.Context, identity domain.Identity, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, identity domain.Identity) ([]domain.AccountingPeriod, error)
	GetChecklist(ctx context.Context, identity domain.Identity, periodID string) (*domain.CloseChecklist, error)
}

// PeriodCloseSvcFacade combines all period service interfaces
type PeriodCloseSvcFacade interface {
	ChecklistCalculator
	PeriodCloseSvc
	PeriodSvc
}
