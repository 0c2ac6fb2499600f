package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
)

// EscalationService decides which drafts need an administrator and records their verdicts.
type EscalationService struct {
	BaseService
	approvalRepo portsrepo.ApprovalRepositoryFacade
}

var _ portssvc.EscalationSvcFacade = (*EscalationService)(nil)

func NewEscalationService(approvalRepo portsrepo.ApprovalRepositoryFacade, actors portsrepo.ActorRepository, emitter audit.Emitter) *EscalationService {
	return &EscalationService{
		BaseService:  newBaseService(actors, emitter),
		approvalRepo: approvalRepo,
	}
}

// Decide escalates iff at least one issue has error severity.
func (s *EscalationService) Decide(issues []domain.ValidationIssue) domain.GateDecision {
	var reasons []string
	seen := map[string]bool{}
	for _, issue := range issues {
		if issue.Severity != domain.SeverityError || seen[issue.Code] {
			continue
		}
		seen[issue.Code] = true
		reasons = append(reasons, issue.Code)
	}
	return domain.GateDecision{Escalate: len(reasons) > 0, Reasons: reasons}
}

// newApprovalRequest builds the approval a gate decision asks for.
func newApprovalRequest(approvalID, tenantID, setID, actorID string, decision domain.GateDecision, at time.Time) *domain.Approval {
	if !decision.Escalate {
		return nil
	}
	return &domain.Approval{
		ApprovalID:       approvalID,
		TenantID:         tenantID,
		TransactionSetID: setID,
		RequiredRole:     domain.RoleAdmin,
		Status:           domain.ApprovalRequested,
		Reason:           "validation errors: " + strings.Join(decision.Reasons, ", "),
		RequestedBy:      actorID,
		RequestedAt:      at,
	}
}

func (s *EscalationService) ResolveApproval(ctx context.Context, identity domain.Identity, approvalID string, decision domain.ApprovalDecision, note string) (*domain.ApprovalResolution, error) {
	actor, err := s.ResolveActor(ctx, identity, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	var (
		status    domain.ApprovalStatus
		setStatus domain.TransactionSetStatus
	)
	switch decision {
	case domain.DecisionGrant:
		status, setStatus = domain.ApprovalGranted, domain.TransactionSetApproved
	case domain.DecisionDeny:
		status, setStatus = domain.ApprovalDenied, domain.TransactionSetDraft
	default:
		return nil, apperrors.NewValidationFailedError("decision must be grant or deny")
	}

	resolution, err := s.approvalRepo.ResolveApproval(ctx, identity.TenantID, approvalID, status, setStatus, actor.ActorID, strings.TrimSpace(note), s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to resolve approval", slog.String("approval_id", approvalID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Approval resolved",
		slog.String("approval_id", approvalID),
		slog.String("status", string(status)),
		slog.String("transaction_set_id", resolution.Approval.TransactionSetID))
	s.Emit(ctx, actor, "approval", approvalID, "approval."+string(status), map[string]any{
		"transactionSetID": resolution.Approval.TransactionSetID,
		"setStatus":        string(resolution.SetStatus),
	})
	return resolution, nil
}

func (s *EscalationService) GetApproval(ctx context.Context, identity domain.Identity, approvalID string) (*domain.Approval, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.approvalRepo.FindApprovalByID(ctx, identity.TenantID, approvalID)
}

func (s *EscalationService) ListApprovals(ctx context.Context, identity domain.Identity, params dto.ListApprovalsParams) (*dto.ListApprovalsResponse, error) {
	if err := s.AuthorizeIdentity(ctx, identity, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var status *domain.ApprovalStatus
	if params.Status != "" {
		st := domain.ApprovalStatus(params.Status)
		status = &st
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	approvals, next, err := s.approvalRepo.ListApprovals(ctx, identity.TenantID, status, params.Limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approvals")
		return nil, err
	}
	if approvals == nil {
		approvals = []domain.Approval{}
	}
	return &dto.ListApprovalsResponse{Approvals: approvals, NextToken: next}, nil
}
