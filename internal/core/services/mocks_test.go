package services_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Actors and tenant settings ---

type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) EnsureActor(ctx context.Context, tenantID, userID string) (*domain.Actor, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

type MockTenantSettingsReader struct {
	mock.Mock
}

func (m *MockTenantSettingsReader) FindTenantSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

// --- Transaction sets ---

type MockTransactionSetRepository struct {
	mock.Mock
}

func (m *MockTransactionSetRepository) FindTransactionSetByID(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error) {
	args := m.Called(ctx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSet), args.Error(1)
}

func (m *MockTransactionSetRepository) FindTransactionSetDetails(ctx context.Context, tenantID, setID string) (*domain.TransactionSetDetails, error) {
	args := m.Called(ctx, tenantID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSetDetails), args.Error(1)
}

func (m *MockTransactionSetRepository) ListTransactionSets(ctx context.Context, tenantID string, status *domain.TransactionSetStatus, limit int, nextToken *string) ([]domain.TransactionSet, *string, error) {
	args := m.Called(ctx, tenantID, status, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.TransactionSet), next, args.Error(2)
}

func (m *MockTransactionSetRepository) FindIssueByID(ctx context.Context, tenantID, issueID string) (*domain.ValidationIssue, error) {
	args := m.Called(ctx, tenantID, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationIssue), args.Error(1)
}

// CreateDraftBatch returns either a fixed batch or, when given a func, the result of
// applying it to the batch it received.
func (m *MockTransactionSetRepository) CreateDraftBatch(ctx context.Context, batch domain.DraftBatch) (*domain.DraftBatch, error) {
	args := m.Called(ctx, batch)
	if fn, ok := args.Get(0).(func(domain.DraftBatch) *domain.DraftBatch); ok {
		return fn(batch), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftBatch), args.Error(1)
}

func (m *MockTransactionSetRepository) RecordValidationRun(ctx context.Context, run domain.ValidationRun, escalation *domain.Approval) (domain.TransactionSetStatus, *domain.Approval, error) {
	args := m.Called(ctx, run, escalation)
	var open *domain.Approval
	if args.Get(1) != nil {
		open = args.Get(1).(*domain.Approval)
	}
	return args.Get(0).(domain.TransactionSetStatus), open, args.Error(2)
}

func (m *MockTransactionSetRepository) UpdateTransactionSetStatus(ctx context.Context, tenantID, setID string, from []domain.TransactionSetStatus, to domain.TransactionSetStatus, actorID string, at time.Time) (*domain.TransactionSet, error) {
	args := m.Called(ctx, tenantID, setID, from, to, actorID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSet), args.Error(1)
}

func (m *MockTransactionSetRepository) SaveIssueResolution(ctx context.Context, resolution domain.IssueResolution) (*domain.IssueResolution, error) {
	args := m.Called(ctx, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueResolution), args.Error(1)
}

// --- Approvals ---

type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) FindApprovalByID(ctx context.Context, tenantID, approvalID string) (*domain.Approval, error) {
	args := m.Called(ctx, tenantID, approvalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockApprovalRepository) ListApprovals(ctx context.Context, tenantID string, status *domain.ApprovalStatus, limit int, nextToken *string) ([]domain.Approval, *string, error) {
	args := m.Called(ctx, tenantID, status, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Approval), next, args.Error(2)
}

func (m *MockApprovalRepository) ResolveApproval(ctx context.Context, tenantID, approvalID string, status domain.ApprovalStatus, setStatus domain.TransactionSetStatus, deciderID, note string, at time.Time) (*domain.ApprovalResolution, error) {
	args := m.Called(ctx, tenantID, approvalID, status, setStatus, deciderID, note, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalResolution), args.Error(1)
}

// --- Periods ---

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListNonOpenPeriods(ctx context.Context, tenantID string) ([]domain.PeriodWindow, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodWindow), args.Error(1)
}

func (m *MockPeriodRepository) HasOverlappingPeriod(ctx context.Context, tenantID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) CountTransactionSetsByStatus(ctx context.Context, tenantID string, status domain.TransactionSetStatus, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, status, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) CountUnmatchedStatementLines(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, period domain.AccountingPeriod, from domain.PeriodStatus) error {
	args := m.Called(ctx, period, from)
	return args.Error(0)
}

// --- Reconciliation ---

type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) FindSessionByID(ctx context.Context, tenantID, sessionID string) (*domain.ReconciliationSession, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSession), args.Error(1)
}

func (m *MockReconciliationRepository) ListLedgerLines(ctx context.Context, tenantID, accountID string, upTo time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tenantID, accountID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockReconciliationRepository) ListEntryNets(ctx context.Context, tenantID, accountID string, upTo time.Time) ([]domain.EntryNet, error) {
	args := m.Called(ctx, tenantID, accountID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryNet), args.Error(1)
}

func (m *MockReconciliationRepository) SaveSession(ctx context.Context, session domain.ReconciliationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockReconciliationRepository) AddStatementLines(ctx context.Context, tenantID, sessionID string, lines []domain.StatementLine) error {
	args := m.Called(ctx, tenantID, sessionID, lines)
	return args.Error(0)
}

func (m *MockReconciliationRepository) MatchStatementLine(ctx context.Context, tenantID, sessionID, lineID, journalEntryID, actorID string, at time.Time) (*domain.StatementLine, error) {
	args := m.Called(ctx, tenantID, sessionID, lineID, journalEntryID, actorID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatementLine), args.Error(1)
}

func (m *MockReconciliationRepository) CompleteSession(ctx context.Context, session domain.ReconciliationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// --- Accounts ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountMappings(ctx context.Context, tenantID string) ([]domain.AccountMapping, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) (*domain.AccountMapping, error) {
	args := m.Called(ctx, mapping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

// --- Audit and statement parsing ---

type recordingEmitter struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (e *recordingEmitter) Emit(_ context.Context, event domain.AuditEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *recordingEmitter) actions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Action
	}
	return out
}

func (e *recordingEmitter) lastEvent(action string) (domain.AuditEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.events) - 1; i >= 0; i-- {
		if e.events[i].Action == action {
			return e.events[i], true
		}
	}
	return domain.AuditEvent{}, false
}

type stubParser struct {
	lines []domain.StatementLine
	err   error
}

func (p stubParser) Parse(_ context.Context, _ io.Reader) ([]domain.StatementLine, error) {
	return p.lines, p.err
}

// --- Fixtures ---

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
	testActor  = "actor-1"
)

func memberIdentity() domain.Identity {
	return domain.Identity{TenantID: testTenant, UserID: testUser, Role: domain.RoleMember}
}

func adminIdentity() domain.Identity {
	return domain.Identity{TenantID: testTenant, UserID: testUser, Role: domain.RoleAdmin}
}

func readOnlyIdentity() domain.Identity {
	return domain.Identity{TenantID: testTenant, UserID: testUser, Role: domain.RoleReadOnly}
}

func testActorRecord() *domain.Actor {
	return &domain.Actor{ActorID: testActor, TenantID: testTenant, UserID: testUser}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
