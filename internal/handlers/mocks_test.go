package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, identity domain.Identity, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, identity domain.Identity, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, identity, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, identity domain.Identity, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, identity, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListMappings(ctx context.Context, identity domain.Identity) ([]domain.AccountMapping, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

func (m *MockAccountService) UpsertMapping(ctx context.Context, identity domain.Identity, mappingKey string, req dto.UpsertMappingRequest) (*domain.AccountMapping, error) {
	args := m.Called(ctx, identity, mappingKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock DraftIntakeService ---
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) SubmitDraft(ctx context.Context, identity domain.Identity, req dto.SubmitDraftRequest) (*domain.DraftResult, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftResult), args.Error(1)
}

func (m *MockDraftService) GetTransactionSet(ctx context.Context, identity domain.Identity, setID string) (*domain.TransactionSetDetails, error) {
	args := m.Called(ctx, identity, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSetDetails), args.Error(1)
}

func (m *MockDraftService) ListTransactionSets(ctx context.Context, identity domain.Identity, params dto.ListTransactionSetsParams) (*dto.ListTransactionSetsResponse, error) {
	args := m.Called(ctx, identity, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionSetsResponse), args.Error(1)
}

func (m *MockDraftService) RevalidateTransactionSet(ctx context.Context, identity domain.Identity, setID string) (*dto.RevalidateResponse, error) {
	args := m.Called(ctx, identity, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RevalidateResponse), args.Error(1)
}

func (m *MockDraftService) VoidTransactionSet(ctx context.Context, identity domain.Identity, setID string, reason string) (*domain.TransactionSet, error) {
	args := m.Called(ctx, identity, setID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSet), args.Error(1)
}

func (m *MockDraftService) DismissIssue(ctx context.Context, identity domain.Identity, issueID string, note string) (*domain.IssueResolution, error) {
	args := m.Called(ctx, identity, issueID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueResolution), args.Error(1)
}

var _ portssvc.DraftIntakeSvcFacade = (*MockDraftService)(nil)

// --- Mock EscalationService ---
type MockEscalationService struct {
	mock.Mock
}

func (m *MockEscalationService) Decide(issues []domain.ValidationIssue) domain.GateDecision {
	args := m.Called(issues)
	return args.Get(0).(domain.GateDecision)
}

func (m *MockEscalationService) ResolveApproval(ctx context.Context, identity domain.Identity, approvalID string, decision domain.ApprovalDecision, note string) (*domain.ApprovalResolution, error) {
	args := m.Called(ctx, identity, approvalID, decision, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalResolution), args.Error(1)
}

func (m *MockEscalationService) GetApproval(ctx context.Context, identity domain.Identity, approvalID string) (*domain.Approval, error) {
	args := m.Called(ctx, identity, approvalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockEscalationService) ListApprovals(ctx context.Context, identity domain.Identity, params dto.ListApprovalsParams) (*dto.ListApprovalsResponse, error) {
	args := m.Called(ctx, identity, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListApprovalsResponse), args.Error(1)
}

var _ portssvc.EscalationSvcFacade = (*MockEscalationService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, identity domain.Identity, postingIntentID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, identity, postingIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) Reverse(ctx context.Context, identity domain.Identity, journalEntryID string, reason string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, identity, journalEntryID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) GetJournalEntry(ctx context.Context, identity domain.Identity, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, identity, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) StartSession(ctx context.Context, identity domain.Identity, req dto.StartReconciliationRequest) (*domain.ReconciliationSession, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSession), args.Error(1)
}

func (m *MockReconciliationService) AddStatementLines(ctx context.Context, identity domain.Identity, sessionID string, req dto.AddStatementLinesRequest) (*domain.ReconciliationSession, error) {
	args := m.Called(ctx, identity, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSession), args.Error(1)
}

func (m *MockReconciliationService) ImportOFX(ctx context.Context, identity domain.Identity, sessionID string, r io.Reader) (int, error) {
	// the reader is drained so tests can assert on what was uploaded
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, identity, sessionID, string(body))
	return args.Int(0), args.Error(1)
}

func (m *MockReconciliationService) MatchLine(ctx context.Context, identity domain.Identity, sessionID string, req dto.MatchLineRequest) (*domain.StatementLine, error) {
	args := m.Called(ctx, identity, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatementLine), args.Error(1)
}

func (m *MockReconciliationService) AutoMatch(ctx context.Context, identity domain.Identity, sessionID string, windowDays int) ([]domain.MatchPair, error) {
	args := m.Called(ctx, identity, sessionID, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchPair), args.Error(1)
}

func (m *MockReconciliationService) Complete(ctx context.Context, identity domain.Identity, sessionID string, force bool) (*domain.ReconciliationResult, error) {
	args := m.Called(ctx, identity, sessionID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

func (m *MockReconciliationService) GetSession(ctx context.Context, identity domain.Identity, sessionID string) (*domain.ReconciliationSession, error) {
	args := m.Called(ctx, identity, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSession), args.Error(1)
}

func (m *MockReconciliationService) ExportReport(ctx context.Context, identity domain.Identity, sessionID string, format string) ([]byte, error) {
	args := m.Called(ctx, identity, sessionID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Mock PeriodCloseService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) ComputeChecklist(ctx context.Context, tenantID string, from, to time.Time) (*domain.CloseChecklist, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseChecklist), args.Error(1)
}

func (m *MockPeriodService) SoftClose(ctx context.Context, identity domain.Identity, periodID string) (*domain.PeriodCloseResult, error) {
	args := m.Called(ctx, identity, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodCloseResult), args.Error(1)
}

func (m *MockPeriodService) Close(ctx context.Context, identity domain.Identity, periodID string) (*domain.PeriodCloseResult, error) {
	args := m.Called(ctx, identity, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodCloseResult), args.Error(1)
}

func (m *MockPeriodService) CreatePeriod(ctx context.Context, identity domain.Identity, req dto.CreatePeriodRequest) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, identity domain.Identity, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, identity, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, identity domain.Identity) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) GetChecklist(ctx context.Context, identity domain.Identity, periodID string) (*domain.CloseChecklist, error) {
	args := m.Called(ctx, identity, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseChecklist), args.Error(1)
}

var _ portssvc.PeriodCloseSvcFacade = (*MockPeriodService)(nil)
