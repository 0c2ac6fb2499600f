package handlers_test

import (
	"net/http"
	"testing"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DraftHandlerTestSuite struct {
	handlerSuite
}

// draftBody carries a tenantID that must be ignored in favour of the token.
const draftBody = `{
	"tenantID": "someone-else",
	"businessDate": "2024-03-10T00:00:00Z",
	"source": "pos",
	"transactions": [{
		"type": "sale",
		"occurredOn": "2024-03-10T09:30:00Z",
		"lines": [{"quantity": "2", "unitPrice": "25.00", "amount": "50.00"}]
	}],
	"postingIntent": {
		"currencyCode": "USD",
		"entries": [
			{"mappingKey": "cash", "side": "DEBIT", "amount": "50.00"},
			{"accountID": "acc-rev", "side": "CREDIT", "amount": "50.00"}
		]
	}
}`

func (s *DraftHandlerTestSuite) TestSubmitDraft_ReturnsIssuesWith201() {
	intentID := "pi-1"
	s.drafts.On("SubmitDraft", mock.Anything,
		mock.MatchedBy(func(id domain.Identity) bool { return id.TenantID == testTenant && id.UserID == testUser }),
		mock.MatchedBy(func(req dto.SubmitDraftRequest) bool {
			return len(req.Transactions) == 1 &&
				req.Transactions[0].Lines[0].Amount.Equal(decimal.RequireFromString("50")) &&
				req.PostingIntent != nil && len(req.PostingIntent.Entries) == 2 &&
				req.PostingIntent.Entries[1].AccountID == "acc-rev"
		}),
	).Return(&domain.DraftResult{
		TransactionSetID: "set-1",
		Status:           domain.TransactionSetDraft,
		PostingIntentID:  &intentID,
		Issues: []domain.ValidationIssue{
			{IssueID: "iss-1", TenantID: testTenant, TransactionSetID: "set-1", Severity: domain.SeverityWarning, Code: "MISSING_DOCUMENT", Message: "sale has no document"},
		},
	}, nil).Once()

	w := s.do(http.MethodPost, v1("/drafts"), draftBody, domain.RoleMember)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("set-1", body["transactionSetID"])
	s.Equal("pi-1", body["postingIntentID"])
	issues, ok := body["issues"].([]any)
	s.Require().True(ok)
	s.Len(issues, 1)
	s.NotContains(w.Body.String(), "someone-else")
}

func (s *DraftHandlerTestSuite) TestSubmitDraft_RejectsUnknownSide() {
	body := `{"businessDate":"2024-03-10T00:00:00Z","postingIntent":{"entries":[
		{"mappingKey":"cash","side":"SIDEWAYS","amount":"1"},
		{"mappingKey":"rev","side":"CREDIT","amount":"1"}]}}`

	w := s.do(http.MethodPost, v1("/drafts"), body, domain.RoleMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "entry_side")
}

func (s *DraftHandlerTestSuite) TestSubmitDraft_RejectsNegativeIntentAmount() {
	body := `{"businessDate":"2024-03-10T00:00:00Z","postingIntent":{"entries":[
		{"mappingKey":"cash","side":"DEBIT","amount":"-5"},
		{"mappingKey":"rev","side":"CREDIT","amount":"-5"}]}}`

	w := s.do(http.MethodPost, v1("/drafts"), body, domain.RoleMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "decimal_nonneg")
}

func (s *DraftHandlerTestSuite) TestSubmitDraft_ReadOnlyIsForbidden() {
	w := s.do(http.MethodPost, v1("/drafts"), draftBody, domain.RoleReadOnly)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *DraftHandlerTestSuite) TestGetTransactionSet_NotFound() {
	s.drafts.On("GetTransactionSet", mock.Anything, s.identity(domain.RoleReadOnly), "set-x").
		Return(nil, apperrors.NewNotFoundError("transaction set set-x not found")).Once()

	w := s.do(http.MethodGet, v1("/transaction-sets/set-x"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("transaction set set-x not found", s.errorMessage(w))
}

func (s *DraftHandlerTestSuite) TestListTransactionSets() {
	params := dto.ListTransactionSetsParams{Status: "pending_approval", Limit: 10}
	s.drafts.On("ListTransactionSets", mock.Anything, s.identity(domain.RoleReadOnly), params).
		Return(&dto.ListTransactionSetsResponse{TransactionSets: []domain.TransactionSet{{TransactionSetID: "set-1"}}}, nil).Once()

	w := s.do(http.MethodGet, v1("/transaction-sets?status=pending_approval&limit=10"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "set-1")
}

func (s *DraftHandlerTestSuite) TestListTransactionSets_UnknownStatus() {
	w := s.do(http.MethodGet, v1("/transaction-sets?status=archived"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *DraftHandlerTestSuite) TestRevalidate() {
	s.drafts.On("RevalidateTransactionSet", mock.Anything, s.identity(domain.RoleMember), "set-1").
		Return(&dto.RevalidateResponse{TransactionSetID: "set-1", Status: domain.TransactionSetDraft, Issues: []domain.ValidationIssue{}}, nil).Once()

	w := s.do(http.MethodPost, v1("/transaction-sets/set-1/revalidate"), nil, domain.RoleMember)

	s.Equal(http.StatusOK, w.Code)
}

func (s *DraftHandlerTestSuite) TestVoid_PostedSetConflicts() {
	s.drafts.On("VoidTransactionSet", mock.Anything, s.identity(domain.RoleMember), "set-1", "duplicate").
		Return(nil, apperrors.NewConflictError("posted transaction sets are reversed, not voided")).Once()

	w := s.do(http.MethodPost, v1("/transaction-sets/set-1/void"), dto.VoidTransactionSetRequest{Reason: "duplicate"}, domain.RoleMember)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *DraftHandlerTestSuite) TestVoid_RequiresReason() {
	w := s.do(http.MethodPost, v1("/transaction-sets/set-1/void"), `{}`, domain.RoleMember)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *DraftHandlerTestSuite) TestDismissIssue_WithoutBody() {
	s.drafts.On("DismissIssue", mock.Anything, s.identity(domain.RoleMember), "iss-1", "").
		Return(&domain.IssueResolution{ResolutionID: "res-1", IssueID: "iss-1"}, nil).Once()

	w := s.do(http.MethodPost, v1("/issues/iss-1/dismiss"), nil, domain.RoleMember)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("res-1", s.decode(w)["resolutionID"])
}

func (s *DraftHandlerTestSuite) TestDismissIssue_ErrorSeverity() {
	s.drafts.On("DismissIssue", mock.Anything, s.identity(domain.RoleMember), "iss-2", "fine").
		Return(nil, apperrors.NewValidationFailedError("error issues cannot be dismissed")).Once()

	w := s.do(http.MethodPost, v1("/issues/iss-2/dismiss"), dto.DismissIssueRequest{Note: "fine"}, domain.RoleMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("error issues cannot be dismissed", s.errorMessage(w))
}

func TestDraftHandler(t *testing.T) {
	suite.Run(t, new(DraftHandlerTestSuite))
}
