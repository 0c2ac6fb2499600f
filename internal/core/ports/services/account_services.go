package services

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account of the caller's tenant.
	GetAccountByID(ctx context.Context, identity domain.Identity, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, identity domain.Identity, params dto.ListAccountsParams) ([]domain.Account, error)

	ListMappings(ctx context.Context, identity domain.Identity) ([]domain.AccountMapping, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, identity domain.Identity, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpsertMapping points a posting-intent mapping key at an account.
	UpsertMapping(ctx context.Context, identity domain.Identity, mappingKey string, req dto.UpsertMappingRequest) (*domain.AccountMapping, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
