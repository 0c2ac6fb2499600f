package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerTestSuite struct {
	handlerSuite
}

func (s *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "EUR"}
	s.accounts.On("CreateAccount", mock.Anything, s.identity(domain.RoleMember), req).
		Return(&domain.Account{AccountID: "acc-1", TenantID: testTenant, Code: "1000", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "EUR", IsActive: true}, nil).Once()

	w := s.do(http.MethodPost, v1("/accounts"), req, domain.RoleMember)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("acc-1", body["accountID"])
	s.Equal("EUR", body["currencyCode"])
}

func (s *AccountHandlerTestSuite) TestCreateAccount_ReadOnlyIsForbidden() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	w := s.do(http.MethodPost, v1("/accounts"), req, domain.RoleReadOnly)

	s.Equal(http.StatusForbidden, w.Code)
	s.accounts.AssertNotCalled(s.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	w := s.do(http.MethodPost, v1("/accounts"), `{"code":"1000","name":"Cash","accountType":"SAVINGS"}`, domain.RoleMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "Invalid request format")
}

func (s *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	s.accounts.On("CreateAccount", mock.Anything, s.identity(domain.RoleAdmin), req).
		Return(nil, apperrors.NewConflictError("account code 1000 already exists")).Once()

	w := s.do(http.MethodPost, v1("/accounts"), req, domain.RoleAdmin)

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("account code 1000 already exists", s.errorMessage(w))
}

func (s *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	s.accounts.On("GetAccountByID", mock.Anything, s.identity(domain.RoleReadOnly), "missing").
		Return(nil, apperrors.NewNotFoundError("account missing not found")).Once()

	w := s.do(http.MethodGet, v1("/accounts/missing"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AccountHandlerTestSuite) TestListAccounts_PassesPaging() {
	s.accounts.On("ListAccounts", mock.Anything, s.identity(domain.RoleReadOnly), dto.ListAccountsParams{Limit: 5, Offset: 10}).
		Return([]domain.Account{{AccountID: "acc-1", AuditFields: domain.AuditFields{CreatedAt: time.Now()}}, {AccountID: "acc-2"}}, nil).Once()

	w := s.do(http.MethodGet, v1("/accounts?limit=5&offset=10"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"accountID":"acc-2"`)
}

func (s *AccountHandlerTestSuite) TestListAccounts_LimitTooLarge() {
	w := s.do(http.MethodGet, v1("/accounts?limit=500"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AccountHandlerTestSuite) TestUpsertMapping() {
	s.accounts.On("UpsertMapping", mock.Anything, s.identity(domain.RoleMember), "sales.revenue", dto.UpsertMappingRequest{AccountID: "acc-9"}).
		Return(&domain.AccountMapping{TenantID: testTenant, MappingKey: "sales.revenue", AccountID: "acc-9"}, nil).Once()

	w := s.do(http.MethodPut, v1("/account-mappings/sales.revenue"), dto.UpsertMappingRequest{AccountID: "acc-9"}, domain.RoleMember)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "acc-9")
}

func (s *AccountHandlerTestSuite) TestListMappings_EmptyIsArray() {
	s.accounts.On("ListMappings", mock.Anything, s.identity(domain.RoleReadOnly)).Return(nil, nil).Once()

	w := s.do(http.MethodGet, v1("/account-mappings"), nil, domain.RoleReadOnly)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *AccountHandlerTestSuite) TestAuth_MissingHeader() {
	w := s.do(http.MethodGet, v1("/accounts"), nil, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Authorization header required", s.errorMessage(w))
}

func (s *AccountHandlerTestSuite) TestAuth_WrongSecret() {
	req := httptest.NewRequest(http.MethodGet, v1("/accounts"), nil)
	req.Header.Set("Authorization", "Bearer "+s.token(domain.RoleAdmin, "some-other-secret"))
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid token", s.errorMessage(w))
}

func (s *AccountHandlerTestSuite) TestAuth_UnknownRole() {
	w := s.do(http.MethodGet, v1("/accounts"), nil, domain.TenantRole("OWNER"))

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid token claims", s.errorMessage(w))
}

func (s *AccountHandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, "")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
