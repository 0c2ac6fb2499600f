package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// TransactionSetReader defines read operations for transaction sets and what they own.
type TransactionSetReader interface {
	// FindTransactionSetByID retrieves a set scoped to its tenant.
	FindTransactionSetByID(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error)

	// FindTransactionSetDetails retrieves a set with its transactions, documents, intent,
	// latest validation run issues and open approval.
	FindTransactionSetDetails(ctx context.Context, tenantID, setID string) (*domain.TransactionSetDetails, error)

	// ListTransactionSets retrieves a page of sets, newest business date first.
	// It returns the sets, a token for the next page, and an error.
	ListTransactionSets(ctx context.Context, tenantID string, status *domain.TransactionSetStatus, limit int, nextToken *string) ([]domain.TransactionSet, *string, error)

	// FindIssueByID retrieves a single validation issue.
	FindIssueByID(ctx context.Context, tenantID, issueID string) (*domain.ValidationIssue, error)
}

// TransactionSetWriter defines write operations. Each method is one database transaction.
type TransactionSetWriter interface {
	// CreateDraftBatch persists a whole draft atomically. The returned batch carries
	// the identifiers actually stored (a resubmitted document resolves to the existing row).
	CreateDraftBatch(ctx context.Context, batch domain.DraftBatch) (*domain.DraftBatch, error)

	// RecordValidationRun stores a new run for a draft or pending set. When escalation is
	// non-nil the set moves to pending_approval and the open approval is reused or created.
	// It returns the set status after the run and the open approval, if any.
	RecordValidationRun(ctx context.Context, run domain.ValidationRun, escalation *domain.Approval) (domain.TransactionSetStatus, *domain.Approval, error)

	// UpdateTransactionSetStatus performs a conditional status change from one of the
	// given states. It returns apperrors.ErrConflict when the set is in another state.
	UpdateTransactionSetStatus(ctx context.Context, tenantID, setID string, from []domain.TransactionSetStatus, to domain.TransactionSetStatus, actorID string, at time.Time) (*domain.TransactionSet, error)

	// SaveIssueResolution records a dismissal once; repeated calls return the first resolution.
	SaveIssueResolution(ctx context.Context, resolution domain.IssueResolution) (*domain.IssueResolution, error)
}

// TransactionSetRepositoryFacade combines all transaction set repository interfaces
type TransactionSetRepositoryFacade interface {
	TransactionSetReader
	TransactionSetWriter
}

// ApprovalReader defines read operations for approvals
type ApprovalReader interface {
	FindApprovalByID(ctx context.Context, tenantID, approvalID string) (*domain.Approval, error)

	// ListApprovals retrieves a page of approvals, newest first.
	ListApprovals(ctx context.Context, tenantID string, status *domain.ApprovalStatus, limit int, nextToken *string) ([]domain.Approval, *string, error)
}

// ApprovalWriter defines write operations for approvals
type ApprovalWriter interface {
	// ResolveApproval moves a requested approval to status and its set to setStatus in
	// one transaction. Resolving an already-resolved approval is apperrors.ErrConflict.
	ResolveApproval(ctx context.Context, tenantID, approvalID string, status domain.ApprovalStatus, setStatus domain.TransactionSetStatus, deciderID, note string, at time.Time) (*domain.ApprovalResolution, error)
}

// ApprovalRepositoryFacade combines all approval repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}
