package services

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
)

// DraftIntakeSvc accepts business activity and stores it as a validated draft.
type DraftIntakeSvc interface {
	// SubmitDraft validates and persists a draft atomically. Issues are returned as data.
	SubmitDraft(ctx context.Context, identity domain.Identity, req dto.SubmitDraftRequest) (*domain.DraftResult, error)
}

// TransactionSetReaderSvc defines read operations for transaction sets
type TransactionSetReaderSvc interface {
	GetTransactionSet(ctx context.Context, identity domain.Identity, setID string) (*domain.TransactionSetDetails, error)
	ListTransactionSets(ctx context.Context, identity domain.Identity, params dto.ListTransactionSetsParams) (*dto.ListTransactionSetsResponse, error)
}

// TransactionSetWriterSvc defines lifecycle operations on existing transaction sets
type TransactionSetWriterSvc interface {
	// RevalidateTransactionSet runs the validation engine again and re-applies the escalation gate.
	RevalidateTransactionSet(ctx context.Context, identity domain.Identity, setID string) (*dto.RevalidateResponse, error)

	// VoidTransactionSet abandons a set that has not been posted.
	VoidTransactionSet(ctx context.Context, identity domain.Identity, setID string, reason string) (*domain.TransactionSet, error)

	// DismissIssue records the dismissal of an info or warning issue.
	DismissIssue(ctx context.Context, identity domain.Identity, issueID string, note string) (*domain.IssueResolution, error)
}

// DraftIntakeSvcFacade combines all draft-related service interfaces
type DraftIntakeSvcFacade interface {
	DraftIntakeSvc
	TransactionSetReaderSvc
	TransactionSetWriterSvc
}
