package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/observability/metrics"
	"golang.org/x/sync/errgroup"
)

// PeriodCloseService manages accounting periods and their close checklist.
type PeriodCloseService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

var _ portssvc.PeriodCloseSvcFacade = (*PeriodCloseService)(nil)

func NewPeriodCloseService(periodRepo portsrepo.PeriodRepositoryFacade, actors portsrepo.ActorRepository, emitter audit.Emitter) *PeriodCloseService {
	return &PeriodCloseService{
		BaseService: newBaseService(actors, emitter),
		periodRepo:  periodRepo,
	}
}

// ComputeChecklist counts drafts, pending approvals and unmatched statement lines in
// [from, to]. The three counts run concurrently and read committed data only.
func (s *PeriodCloseService) ComputeChecklist(ctx context.Context, tenantID string, from, to time.Time) (*domain.CloseChecklist, error) {
	var checklist domain.CloseChecklist

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.periodRepo.CountTransactionSetsByStatus(gctx, tenantID, domain.TransactionSetDraft, from, to)
		if err != nil {
			return fmt.Errorf("failed to count drafts: %w", err)
		}
		checklist.DraftTransactions = n
		return nil
	})
	g.Go(func() error {
		n, err := s.periodRepo.CountTransactionSetsByStatus(gctx, tenantID, domain.TransactionSetPendingApproval, from, to)
		if err != nil {
			return fmt.Errorf("failed to count pending approvals: %w", err)
		}
		checklist.PendingApprovals = n
		return nil
	})
	g.Go(func() error {
		n, err := s.periodRepo.CountUnmatchedStatementLines(gctx, tenantID, from, to)
		if err != nil {
			return fmt.Errorf("failed to count unmatched statement lines: %w", err)
		}
		checklist.UnmatchedPayments = n
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute close checklist", slog.String("tenant_id", tenantID))
		return nil, err
	}

	checklist.ComputedAt = s.now()
	return &checklist, nil
}

func (s *PeriodCloseService) CreatePeriod(ctx context.Context, identity domain.Identity, req dto.CreatePeriodRequest) (*domain.AccountingPeriod, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	start, end := toDay(req.StartDate), toDay(req.EndDate)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("period name is required")
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationFailedError("period end date must not be before its start date")
	}

	overlaps, err := s.periodRepo.HasOverlappingPeriod(ctx, identity.TenantID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period overlap")
		return nil, err
	}
	if overlaps {
		return nil, apperrors.NewConflictError(fmt.Sprintf("period %s to %s overlaps an existing period", start.Format(time.DateOnly), end.Format(time.DateOnly)))
	}

	period := domain.AccountingPeriod{
		PeriodID:    s.newID(),
		TenantID:    identity.TenantID,
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.PeriodOpen,
		AuditFields: domain.NewAuditFields(actor.ActorID, s.now()),
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save accounting period")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period created", slog.String("period_id", period.PeriodID))
	s.Emit(ctx, actor, "accounting_period", period.PeriodID, "accounting_period.created", map[string]any{
		"startDate": start.Format(time.DateOnly),
		"endDate":   end.Format(time.DateOnly),
	})
	return &period, nil
}

func (s *PeriodCloseService) GetPeriod(ctx context.Context, identity domain.Identity, periodID string) (*domain.AccountingPeriod, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.periodRepo.FindPeriodByID(ctx, identity.TenantID, periodID)
}

func (s *PeriodCloseService) ListPeriods(ctx context.Context, identity domain.Identity) ([]domain.AccountingPeriod, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	periods, err := s.periodRepo.ListPeriods(ctx, identity.TenantID)
	if err != nil {
		return nil, err
	}
	if periods == nil {
		periods = []domain.AccountingPeriod{}
	}
	return periods, nil
}

// GetChecklist computes a fresh checklist for the period's date range.
func (s *PeriodCloseService) GetChecklist(ctx context.Context, identity domain.Identity, periodID string) (*domain.CloseChecklist, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, identity.TenantID, periodID)
	if err != nil {
		return nil, err
	}
	return s.ComputeChecklist(ctx, identity.TenantID, period.StartDate, period.EndDate)
}

// SoftClose snapshots the checklist and moves an open period to soft_closed.
// Outstanding items are returned as warnings.
func (s *PeriodCloseService) SoftClose(ctx context.Context, identity domain.Identity, periodID string) (*domain.PeriodCloseResult, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, identity.TenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, apperrors.NewConflictError(fmt.Sprintf("accounting period is %s and cannot be soft-closed", period.Status))
	}

	checklist, err := s.ComputeChecklist(ctx, identity.TenantID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	period.Status = domain.PeriodSoftClosed
	period.Checklist = checklist
	period.SoftClosedAt = &now
	period.SoftClosedBy = &actor.ActorID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actor.ActorID
	if err := s.periodRepo.UpdatePeriodStatus(ctx, *period, domain.PeriodOpen); err != nil {
		return nil, err
	}
	metrics.IncPeriodTransition(string(domain.PeriodSoftClosed))

	warnings := checklist.Warnings()
	s.LogInfo(ctx, "Accounting period soft-closed",
		slog.String("period_id", periodID),
		slog.Int("warnings", len(warnings)))
	s.Emit(ctx, actor, "accounting_period", periodID, "accounting_period.soft_closed", map[string]any{
		"draftTransactions": checklist.DraftTransactions,
		"pendingApprovals":  checklist.PendingApprovals,
		"unmatchedPayments": checklist.UnmatchedPayments,
	})
	return &domain.PeriodCloseResult{Period: *period, Checklist: *checklist, Warnings: warnings}, nil
}

// Close hard-closes a soft-closed period once no draft or pending set remains in it.
func (s *PeriodCloseService) Close(ctx context.Context, identity domain.Identity, periodID string) (*domain.PeriodCloseResult, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, identity.TenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodSoftClosed {
		return nil, apperrors.NewConflictError(fmt.Sprintf("accounting period is %s; only a soft-closed period can be closed", period.Status))
	}

	checklist, err := s.ComputeChecklist(ctx, identity.TenantID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	if !checklist.IsClear() {
		return nil, apperrors.NewConflictError("accounting period cannot be closed: " + strings.Join(checklist.Warnings(), "; "))
	}

	now := s.now()
	period.Status = domain.PeriodClosed
	period.Checklist = checklist
	period.ClosedAt = &now
	period.ClosedBy = &actor.ActorID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actor.ActorID
	if err := s.periodRepo.UpdatePeriodStatus(ctx, *period, domain.PeriodSoftClosed); err != nil {
		return nil, err
	}
	metrics.IncPeriodTransition(string(domain.PeriodClosed))

	s.LogInfo(ctx, "Accounting period closed", slog.String("period_id", periodID))
	s.Emit(ctx, actor, "accounting_period", periodID, "accounting_period.closed", nil)
	return &domain.PeriodCloseResult{Period: *period, Checklist: *checklist, Warnings: checklist.Warnings()}, nil
}
