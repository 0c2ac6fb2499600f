package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/core/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/platform/rules"
	"github.com/SscSPs/finance_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

type ReconciliationServiceTestSuite struct {
	suite.Suite
	recon    *MockReconciliationRepository
	accounts *MockAccountRepository
	actors   *MockActorRepository
	emitter  *recordingEmitter
	parser   *stubParser
	service  *services.ReconciliationService
	ctx      context.Context
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.recon = new(MockReconciliationRepository)
	suite.accounts = new(MockAccountRepository)
	suite.actors = new(MockActorRepository)
	suite.emitter = &recordingEmitter{}
	suite.parser = &stubParser{}
	suite.service = services.NewReconciliationService(suite.recon, suite.accounts, suite.actors, rules.Default(), suite.parser, suite.emitter)
	suite.actors.On("EnsureActor", suite.ctx, testTenant, testUser).Return(testActorRecord(), nil).Maybe()
}

func openSession(ending string, lines ...domain.StatementLine) *domain.ReconciliationSession {
	return &domain.ReconciliationSession{
		SessionID:     "sess-1",
		TenantID:      testTenant,
		AccountID:     "acc-bank",
		CurrencyCode:  "USD",
		StatementDate: day(2026, 3, 31),
		EndingBalance: dec(ending),
		Status:        domain.ReconciliationInProgress,
		Lines:         lines,
	}
}

func matchedLine(id, entryID, amount string) domain.StatementLine {
	return domain.StatementLine{LineID: id, SessionID: "sess-1", Amount: dec(amount), PostedOn: day(2026, 3, 10), MatchedEntryID: strPtr(entryID)}
}

func unmatchedLine(id, amount string, posted int) domain.StatementLine {
	return domain.StatementLine{LineID: id, SessionID: "sess-1", Amount: dec(amount), PostedOn: day(2026, 3, posted)}
}

func ledger() []domain.LedgerLine {
	return []domain.LedgerLine{
		{JournalEntryID: "je-1", EntryDate: day(2026, 3, 10), Debit: dec("100.00"), Credit: decimal.Zero},
		{JournalEntryID: "je-2", EntryDate: day(2026, 3, 12), Debit: dec("50.00"), Credit: decimal.Zero},
		{JournalEntryID: "je-3", EntryDate: day(2026, 3, 20), Debit: decimal.Zero, Credit: dec("20.00")},
	}
}

func (suite *ReconciliationServiceTestSuite) TestComplete_Balanced() {
	session := openSession("150.00", matchedLine("l1", "je-1", "100.00"), matchedLine("l2", "je-2", "50.00"))
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListLedgerLines", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(ledger(), nil).Once()
	suite.recon.On("CompleteSession", suite.ctx, mock.MatchedBy(func(s domain.ReconciliationSession) bool {
		return s.Status == domain.ReconciliationCompleted && !s.Forced &&
			s.BookBalance.Decimal.Equal(dec("130.00")) &&
			s.ReconciledBalance.Decimal.Equal(dec("150.00")) &&
			s.Difference.Decimal.IsZero() &&
			s.CompletedBy != nil && *s.CompletedBy == testActor
	})).Return(nil).Once()

	result, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", false)

	suite.Require().NoError(err)
	suite.True(result.Completed)
	suite.True(result.Balanced)
	suite.False(result.Forced)
	suite.True(result.BookBalance.Equal(dec("130.00")))
	suite.True(result.ReconciledBalance.Equal(dec("150.00")))
	suite.True(result.Difference.IsZero())
	suite.Contains(suite.emitter.actions(), "reconciliation.completed")
	suite.recon.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestComplete_ImbalanceRejectedWithBalances() {
	session := openSession("150.00", matchedLine("l1", "je-1", "100.00"), unmatchedLine("l2", "50.00", 12))
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListLedgerLines", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(ledger(), nil).Once()

	result, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", false)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrReconciliationImbalance)
	var imbalance *accounting.ReconciliationImbalanceError
	suite.Require().True(errors.As(err, &imbalance))
	suite.True(imbalance.Difference.Equal(dec("50.00")))
	suite.True(imbalance.ReconciledBalance.Equal(dec("100.00")))
	suite.recon.AssertNotCalled(suite.T(), "CompleteSession", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestComplete_Forced() {
	session := openSession("150.00", matchedLine("l1", "je-1", "100.00"))
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListLedgerLines", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(ledger(), nil).Once()
	suite.recon.On("CompleteSession", suite.ctx, mock.MatchedBy(func(s domain.ReconciliationSession) bool {
		return s.Forced && s.Status == domain.ReconciliationCompleted
	})).Return(nil).Once()

	result, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", true)

	suite.Require().NoError(err)
	suite.True(result.Forced)
	suite.False(result.Balanced)
	suite.True(result.Difference.Equal(dec("50.00")))
}

func pennyShortSession() *domain.ReconciliationSession {
	return openSession("1000.00", matchedLine("l1", "je-1", "999.99"))
}

func pennyShortLedger() []domain.LedgerLine {
	return []domain.LedgerLine{
		{JournalEntryID: "je-1", EntryDate: day(2026, 3, 10), Debit: dec("999.99"), Credit: decimal.Zero},
	}
}

func (suite *ReconciliationServiceTestSuite) TestComplete_OneMinorUnitOffIsRejected() {
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(pennyShortSession(), nil).Once()
	suite.recon.On("ListLedgerLines", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(pennyShortLedger(), nil).Once()

	result, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", false)

	suite.Nil(result)
	var imbalance *accounting.ReconciliationImbalanceError
	suite.Require().True(errors.As(err, &imbalance))
	suite.Equal("0.01", imbalance.Difference.StringFixed(2))
	suite.True(imbalance.ReconciledBalance.Equal(dec("999.99")))
	suite.True(imbalance.StatementBalance.Equal(dec("1000.00")))
	suite.recon.AssertNotCalled(suite.T(), "CompleteSession", mock.Anything, mock.Anything)
	suite.NotContains(suite.emitter.actions(), "reconciliation.completed")
}

func (suite *ReconciliationServiceTestSuite) TestComplete_OneMinorUnitOffForced() {
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(pennyShortSession(), nil).Once()
	suite.recon.On("ListLedgerLines", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(pennyShortLedger(), nil).Once()
	suite.recon.On("CompleteSession", suite.ctx, mock.MatchedBy(func(s domain.ReconciliationSession) bool {
		return s.Forced && s.Status == domain.ReconciliationCompleted && s.Difference.Decimal.Equal(dec("0.01"))
	})).Return(nil).Once()

	result, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", true)

	suite.Require().NoError(err)
	suite.True(result.Completed)
	suite.True(result.Forced)
	suite.False(result.Balanced)
	suite.Equal("0.01", result.Difference.StringFixed(2))

	event, ok := suite.emitter.lastEvent("reconciliation.completed")
	suite.Require().True(ok)
	suite.Equal(true, event.Metadata["forced"])
	suite.Equal(true, event.Metadata["forceRequested"])
	suite.Equal("0.01", event.Metadata["difference"])
	suite.recon.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestComplete_ForceOnBalancedSessionIsNotForced() {
	session := openSession("150.00", matchedLine("l1", "je-1", "100.00"), matchedLine("l2", "je-2", "50.00"))
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListLedgerLines", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(ledger(), nil).Once()
	suite.recon.On("CompleteSession", suite.ctx, mock.MatchedBy(func(s domain.ReconciliationSession) bool {
		return !s.Forced && s.Status == domain.ReconciliationCompleted
	})).Return(nil).Once()

	result, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", true)

	suite.Require().NoError(err)
	suite.True(result.Balanced)
	suite.False(result.Forced)

	event, ok := suite.emitter.lastEvent("reconciliation.completed")
	suite.Require().True(ok)
	suite.Equal(false, event.Metadata["forced"])
	suite.Equal(true, event.Metadata["forceRequested"])
}

func (suite *ReconciliationServiceTestSuite) TestComplete_CompletedSessionConflicts() {
	session := openSession("0")
	session.Status = domain.ReconciliationCompleted
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()

	_, err := suite.service.Complete(suite.ctx, memberIdentity(), "sess-1", true)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_PairsWithinWindowOnly() {
	session := openSession("60.00", unmatchedLine("l1", "100.00", 10), unmatchedLine("l2", "-40.00", 10))
	nets := []domain.EntryNet{
		{JournalEntryID: "je-1", EntryDate: day(2026, 3, 11), Net: dec("100.00")},
		{JournalEntryID: "je-2", EntryDate: day(2026, 3, 20), Net: dec("-40.00")},
	}
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListEntryNets", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(nets, nil).Once()
	suite.recon.On("MatchStatementLine", suite.ctx, testTenant, "sess-1", "l1", "je-1", testActor, mock.Anything).
		Return(&domain.StatementLine{LineID: "l1", MatchedEntryID: strPtr("je-1")}, nil).Once()

	pairs, err := suite.service.AutoMatch(suite.ctx, memberIdentity(), "sess-1", services.DefaultMatchWindowDays)

	suite.Require().NoError(err)
	suite.Equal([]domain.MatchPair{{LineID: "l1", JournalEntryID: "je-1"}}, pairs)
	suite.recon.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_AmbiguousCandidatesLeftAlone() {
	session := openSession("200.00", unmatchedLine("l1", "100.00", 10), unmatchedLine("l2", "100.00", 11))
	nets := []domain.EntryNet{{JournalEntryID: "je-1", EntryDate: day(2026, 3, 10), Net: dec("100.00")}}
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListEntryNets", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(nets, nil).Once()

	pairs, err := suite.service.AutoMatch(suite.ctx, memberIdentity(), "sess-1", 3)

	suite.Require().NoError(err)
	suite.Empty(pairs)
	suite.recon.AssertNotCalled(suite.T(), "MatchStatementLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_SkipsEntriesAlreadyMatched() {
	session := openSession("200.00", matchedLine("l1", "je-1", "100.00"), unmatchedLine("l2", "100.00", 10))
	nets := []domain.EntryNet{{JournalEntryID: "je-1", EntryDate: day(2026, 3, 10), Net: dec("100.00")}}
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListEntryNets", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).Return(nets, nil).Once()

	pairs, err := suite.service.AutoMatch(suite.ctx, memberIdentity(), "sess-1", 3)

	suite.Require().NoError(err)
	suite.Empty(pairs)
}

func (suite *ReconciliationServiceTestSuite) TestMatchLine_EntryMustTouchAccount() {
	session := openSession("100.00", unmatchedLine("l1", "100.00", 10))
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Once()
	suite.recon.On("ListEntryNets", suite.ctx, testTenant, "acc-bank", day(2026, 3, 31)).
		Return([]domain.EntryNet{{JournalEntryID: "je-1", Net: dec("100.00")}}, nil).Once()

	_, err := suite.service.MatchLine(suite.ctx, memberIdentity(), "sess-1", dto.MatchLineRequest{LineID: "l1", JournalEntryID: "je-other"})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestMatchLine_UnknownLine() {
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(openSession("0"), nil).Once()

	_, err := suite.service.MatchLine(suite.ctx, memberIdentity(), "sess-1", dto.MatchLineRequest{LineID: "nope", JournalEntryID: "je-1"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestStartSession_CurrencyMustMatchAccount() {
	suite.accounts.On("FindAccountByID", suite.ctx, testTenant, "acc-bank").
		Return(&domain.Account{AccountID: "acc-bank", Code: "1000", CurrencyCode: "USD", IsActive: true}, nil).Once()

	_, err := suite.service.StartSession(suite.ctx, memberIdentity(), dto.StartReconciliationRequest{
		AccountID: "acc-bank", StatementDate: day(2026, 3, 31), EndingBalance: dec("10.00"), CurrencyCode: "EUR",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.recon.AssertNotCalled(suite.T(), "SaveSession", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestStartSession_DefaultsToAccountCurrency() {
	suite.accounts.On("FindAccountByID", suite.ctx, testTenant, "acc-bank").
		Return(&domain.Account{AccountID: "acc-bank", Code: "1000", CurrencyCode: "JPY", IsActive: true}, nil).Once()
	suite.recon.On("SaveSession", suite.ctx, mock.MatchedBy(func(s domain.ReconciliationSession) bool {
		return s.CurrencyCode == "JPY" && s.Status == domain.ReconciliationInProgress && s.TenantID == testTenant
	})).Return(nil).Once()

	session, err := suite.service.StartSession(suite.ctx, memberIdentity(), dto.StartReconciliationRequest{
		AccountID: "acc-bank", StatementDate: day(2026, 3, 31), EndingBalance: dec("12000"),
	})

	suite.Require().NoError(err)
	suite.Equal("JPY", session.CurrencyCode)
}

func (suite *ReconciliationServiceTestSuite) TestImportOFX_StampsLines() {
	suite.parser.lines = []domain.StatementLine{
		{ExternalID: "fit-1", PostedOn: day(2026, 3, 2), Amount: dec("12.50")},
		{ExternalID: "fit-2", PostedOn: day(2026, 3, 3), Amount: dec("-3.25")},
	}
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(openSession("0"), nil).Once()
	suite.recon.On("AddStatementLines", suite.ctx, testTenant, "sess-1", mock.MatchedBy(func(lines []domain.StatementLine) bool {
		return len(lines) == 2 && lines[0].SessionID == "sess-1" && lines[0].LineID != "" && lines[1].TenantID == testTenant
	})).Return(nil).Once()

	n, err := suite.service.ImportOFX(suite.ctx, memberIdentity(), "sess-1", strings.NewReader("OFXHEADER:100"))

	suite.Require().NoError(err)
	suite.Equal(2, n)
}

func (suite *ReconciliationServiceTestSuite) TestImportOFX_ParseErrorIsValidation() {
	suite.parser.err = errors.New("unexpected EOF")
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(openSession("0"), nil).Once()

	_, err := suite.service.ImportOFX(suite.ctx, memberIdentity(), "sess-1", strings.NewReader("garbage"))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestExportReport() {
	session := openSession("150.00", matchedLine("l1", "je-1", "100.00"))
	session.Status = domain.ReconciliationCompleted
	session.Forced = true
	session.BookBalance = decimal.NewNullDecimal(dec("130.00"))
	session.ReconciledBalance = decimal.NewNullDecimal(dec("100.00"))
	session.Difference = decimal.NewNullDecimal(dec("50.00"))
	suite.recon.On("FindSessionByID", suite.ctx, testTenant, "sess-1").Return(session, nil).Twice()

	xlsx, err := suite.service.ExportReport(suite.ctx, readOnlyIdentity(), "sess-1", "xlsx")
	suite.Require().NoError(err)
	suite.Equal("PK", string(xlsx[:2]))

	pdf, err := suite.service.ExportReport(suite.ctx, readOnlyIdentity(), "sess-1", "pdf")
	suite.Require().NoError(err)
	suite.Equal("%PDF", string(pdf[:4]))

	_, err = suite.service.ExportReport(suite.ctx, readOnlyIdentity(), "sess-1", "csv")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
