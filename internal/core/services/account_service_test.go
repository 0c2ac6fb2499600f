package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/core/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/platform/rules"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accounts *MockAccountRepository
	actors   *MockActorRepository
	settings *MockTenantSettingsReader
	emitter  *recordingEmitter
	service  *services.AccountService
	ctx      context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.accounts = new(MockAccountRepository)
	suite.actors = new(MockActorRepository)
	suite.settings = new(MockTenantSettingsReader)
	suite.emitter = &recordingEmitter{}
	suite.service = services.NewAccountService(suite.accounts, suite.actors, suite.settings, rules.Default(), suite.emitter)
	suite.actors.On("EnsureActor", suite.ctx, testTenant, testUser).Return(testActorRecord(), nil).Maybe()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsToTenantCurrency() {
	eur := "eur"
	suite.settings.On("FindTenantSettings", suite.ctx, testTenant).Return(&domain.TenantSettings{TenantID: testTenant, CurrencyCode: &eur}, nil).Once()
	suite.accounts.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.CurrencyCode == "EUR" && a.Code == "1000" && a.IsActive && a.CreatedBy == testActor
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, memberIdentity(), dto.CreateAccountRequest{
		Code: "1000", Name: "Bank", AccountType: domain.Asset,
	})

	suite.Require().NoError(err)
	suite.Equal("EUR", account.CurrencyCode)
	suite.Equal([]string{"account.created"}, suite.emitter.actions())
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	suite.accounts.On("SaveAccount", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(suite.ctx, memberIdentity(), dto.CreateAccountRequest{
		Code: "1000", Name: "Bank", AccountType: domain.Asset, CurrencyCode: "USD",
	})

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnsupportedCurrency() {
	_, err := suite.service.CreateAccount(suite.ctx, memberIdentity(), dto.CreateAccountRequest{
		Code: "1000", Name: "Bank", AccountType: domain.Asset, CurrencyCode: "XXX",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.accounts.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ReadOnlyForbidden() {
	_, err := suite.service.CreateAccount(suite.ctx, readOnlyIdentity(), dto.CreateAccountRequest{
		Code: "1000", Name: "Bank", AccountType: domain.Asset,
	})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ClampsPaging() {
	suite.accounts.On("ListAccounts", suite.ctx, testTenant, 20, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(suite.ctx, readOnlyIdentity(), dto.ListAccountsParams{Offset: -5})

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestUpsertMapping() {
	suite.accounts.On("FindAccountByID", suite.ctx, testTenant, "acc-1").
		Return(&domain.Account{AccountID: "acc-1", Code: "4000", IsActive: true}, nil).Once()
	suite.accounts.On("UpsertAccountMapping", suite.ctx, mock.MatchedBy(func(m domain.AccountMapping) bool {
		return m.MappingKey == "sales.revenue" && m.AccountID == "acc-1" && m.TenantID == testTenant
	})).Return(&domain.AccountMapping{TenantID: testTenant, MappingKey: "sales.revenue", AccountID: "acc-1"}, nil).Once()

	mapping, err := suite.service.UpsertMapping(suite.ctx, memberIdentity(), " Sales.Revenue ", dto.UpsertMappingRequest{AccountID: "acc-1"})

	suite.Require().NoError(err)
	suite.Equal("sales.revenue", mapping.MappingKey)
	suite.Equal([]string{"account_mapping.upserted"}, suite.emitter.actions())
}

func (suite *AccountServiceTestSuite) TestUpsertMapping_InvalidKey() {
	for _, key := range []string{"", "sales..revenue", "sales revenue", ".sales"} {
		_, err := suite.service.UpsertMapping(suite.ctx, memberIdentity(), key, dto.UpsertMappingRequest{AccountID: "acc-1"})
		suite.ErrorIs(err, apperrors.ErrValidation, key)
	}
	suite.accounts.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpsertMapping_InactiveAccount() {
	suite.accounts.On("FindAccountByID", suite.ctx, testTenant, "acc-1").
		Return(&domain.Account{AccountID: "acc-1", Code: "4000", IsActive: false}, nil).Once()

	_, err := suite.service.UpsertMapping(suite.ctx, memberIdentity(), "sales.revenue", dto.UpsertMappingRequest{AccountID: "acc-1"})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
