package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxActorRepository stores tenants and their actors.
type PgxActorRepository struct {
	BaseRepository
}

func newPgxActorRepository(pool *pgxpool.Pool) *PgxActorRepository {
	return &PgxActorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.ActorRepository      = (*PgxActorRepository)(nil)
	_ portsrepo.TenantSettingsReader = (*PgxActorRepository)(nil)
)

func scanActor(row pgx.Row) (domain.Actor, error) {
	var a domain.Actor
	err := row.Scan(&a.ActorID, &a.TenantID, &a.UserID, &a.CreatedAt)
	return a, err
}

// EnsureActor resolves the actor for a user, creating the tenant and actor rows on first use.
func (r *PgxActorRepository) EnsureActor(ctx context.Context, tenantID, userID string) (*domain.Actor, error) {
	if _, err := r.Pool.Exec(ctx, `INSERT INTO tenants (tenant_id) VALUES ($1) ON CONFLICT DO NOTHING`, tenantID); err != nil {
		return nil, mapPgError(err, "failed to register tenant "+tenantID)
	}

	actor, _, err := insertOrFetch(ctx, r.Pool, insertOrFetchQuery[domain.Actor]{
		insertSQL: `
			INSERT INTO actors (actor_id, tenant_id, user_id, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (tenant_id, user_id) DO NOTHING
			RETURNING actor_id, tenant_id, user_id, created_at`,
		insertArgs: []any{uuid.NewString(), tenantID, userID, time.Now().UTC()},
		selectSQL: `
			SELECT actor_id, tenant_id, user_id, created_at
			FROM actors WHERE tenant_id = $1 AND user_id = $2`,
		selectArgs: []any{tenantID, userID},
		scan:       scanActor,
	})
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// FindTenantSettings retrieves the tenant's rule overrides.
func (r *PgxActorRepository) FindTenantSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	query := `
		SELECT tenant_id, currency_code, document_required_types, approval_threshold
		FROM tenant_settings
		WHERE tenant_id = $1`

	var s domain.TenantSettings
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&s.TenantID,
		&s.CurrencyCode,
		&s.DocumentRequiredTypes,
		&s.ApprovalThreshold,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to find tenant settings for "+tenantID)
	}
	return &s, nil
}
