package services

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
)

// EscalationGate decides whether a validation outcome needs an approval.
type EscalationGate interface {
	Decide(issues []domain.ValidationIssue) domain.GateDecision
}

// ApprovalSvc defines the administrator-facing approval operations
type ApprovalSvc interface {
	// ResolveApproval grants or denies an open approval. Only ADMIN identities may call it.
	ResolveApproval(ctx context.Context, identity domain.Identity, approvalID string, decision domain.ApprovalDecision, note string) (*domain.ApprovalResolution, error)
	GetApproval(ctx context.Context, identity domain.Identity, approvalID string) (*domain.Approval, error)
	ListApprovals(ctx context.Context, identity domain.Identity, params dto.ListApprovalsParams) (*dto.ListApprovalsResponse, error)
}

// EscalationSvcFacade combines the gate and approval operations
type EscalationSvcFacade interface {
	EscalationGate
	ApprovalSvc
}
