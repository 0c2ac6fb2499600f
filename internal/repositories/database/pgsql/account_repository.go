package pgsql

import (
	"context"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, code, name, account_type, currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.TenantID,
		&a.Code,
		&a.Name,
		&a.AccountType,
		&a.CurrencyCode,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Code,
		account.Name,
		account.AccountType,
		account.CurrencyCode,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save account "+account.Code)
}

// FindAccountByID retrieves an account by its ID within a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		return nil, mapPgError(err, "failed to find account by ID "+accountID)
	}
	return &account, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan account row")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating account rows")
	}
	return accounts, nil
}

// UpsertAccountMapping points a mapping key at an account.
func (r *PgxAccountRepository) UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) (*domain.AccountMapping, error) {
	query := `
		INSERT INTO account_mappings (tenant_id, mapping_key, account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, mapping_key) DO UPDATE
		SET account_id = EXCLUDED.account_id,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		RETURNING tenant_id, mapping_key, account_id, created_at, created_by, last_updated_at, last_updated_by;
	`
	var m domain.AccountMapping
	err := r.Pool.QueryRow(ctx, query,
		mapping.TenantID,
		mapping.MappingKey,
		mapping.AccountID,
		mapping.CreatedAt,
		mapping.CreatedBy,
		mapping.LastUpdatedAt,
		mapping.LastUpdatedBy,
	).Scan(&m.TenantID, &m.MappingKey, &m.AccountID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return nil, mapPgError(err, "failed to upsert account mapping "+mapping.MappingKey)
	}
	return &m, nil
}

// ListAccountMappings retrieves every mapping key of a tenant.
func (r *PgxAccountRepository) ListAccountMappings(ctx context.Context, tenantID string) ([]domain.AccountMapping, error) {
	query := `
		SELECT tenant_id, mapping_key, account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM account_mappings
		WHERE tenant_id = $1
		ORDER BY mapping_key;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, mapPgError(err, "failed to list account mappings")
	}
	defer rows.Close()

	mappings := []domain.AccountMapping{}
	for rows.Next() {
		var m domain.AccountMapping
		if err := rows.Scan(&m.TenantID, &m.MappingKey, &m.AccountID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, mapPgError(err, "failed to scan account mapping row")
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating account mapping rows")
	}
	return mappings, nil
}
