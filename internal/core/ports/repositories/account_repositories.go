package repositories

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of a tenant.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a tenant.
	ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error)

	// ListAccountMappings retrieves all mapping keys of a tenant.
	ListAccountMappings(ctx context.Context, tenantID string) ([]domain.AccountMapping, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code is apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpsertAccountMapping points a mapping key at an account, replacing any previous target.
	UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) (*domain.AccountMapping, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
