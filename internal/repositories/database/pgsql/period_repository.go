package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, tenant_id, name, start_date, end_date, status, checklist,
	soft_closed_at, soft_closed_by, closed_at, closed_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.TenantID,
		&p.Name,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.Checklist,
		&p.SoftClosedAt,
		&p.SoftClosedBy,
		&p.ClosedAt,
		&p.ClosedBy,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SavePeriod inserts a new period. Overlapping windows violate the exclusion constraint.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, p domain.AccountingPeriod) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO accounting_periods (`+periodColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		p.PeriodID,
		p.TenantID,
		p.Name,
		p.StartDate,
		p.EndDate,
		p.Status,
		p.Checklist,
		p.SoftClosedAt,
		p.SoftClosedBy,
		p.ClosedAt,
		p.ClosedBy,
		p.CreatedAt,
		p.CreatedBy,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save accounting period")
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	p, err := scanPeriod(r.Pool.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM accounting_periods WHERE tenant_id = $1 AND period_id = $2`,
		tenantID, periodID))
	if err != nil {
		return nil, mapPgError(err, "failed to find accounting period "+periodID)
	}
	return &p, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+periodColumns+` FROM accounting_periods WHERE tenant_id = $1 ORDER BY start_date`, tenantID)
	if err != nil {
		return nil, mapPgError(err, "failed to query accounting periods")
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan accounting period row")
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating accounting period rows")
	}
	return periods, nil
}

func (r *PgxPeriodRepository) ListNonOpenPeriods(ctx context.Context, tenantID string) ([]domain.PeriodWindow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT start_date, end_date, status
		FROM accounting_periods
		WHERE tenant_id = $1 AND status <> $2
		ORDER BY start_date;`, tenantID, domain.PeriodOpen)
	if err != nil {
		return nil, mapPgError(err, "failed to query closed periods")
	}
	windows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.PeriodWindow])
	if err != nil {
		return nil, mapPgError(err, "failed to scan closed periods")
	}
	return windows, nil
}

func (r *PgxPeriodRepository) HasOverlappingPeriod(ctx context.Context, tenantID string, start, end time.Time) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounting_periods
			WHERE tenant_id = $1 AND daterange(start_date, end_date, '[]') && daterange($2::date, $3::date, '[]')
		);`, tenantID, start, end).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check period overlap")
	}
	return exists, nil
}

// UpdatePeriodStatus is a compare-and-set on the period status.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, p domain.AccountingPeriod, from domain.PeriodStatus) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounting_periods
		SET status = $1, checklist = $2, soft_closed_at = $3, soft_closed_by = $4,
		    closed_at = $5, closed_by = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $9 AND period_id = $10 AND status = $11;`,
		p.Status,
		p.Checklist,
		p.SoftClosedAt,
		p.SoftClosedBy,
		p.ClosedAt,
		p.ClosedBy,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
		p.TenantID,
		p.PeriodID,
		from,
	)
	if err != nil {
		return mapPgError(err, "failed to update accounting period")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("accounting period is no longer " + string(from))
	}
	return nil
}

func (r *PgxPeriodRepository) CountTransactionSetsByStatus(ctx context.Context, tenantID string, status domain.TransactionSetStatus, from, to time.Time) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transaction_sets
		WHERE tenant_id = $1 AND status = $2 AND business_date BETWEEN $3 AND $4;`,
		tenantID, status, from, to).Scan(&n)
	if err != nil {
		return 0, mapPgError(err, "failed to count transaction sets")
	}
	return n, nil
}

func (r *PgxPeriodRepository) CountUnmatchedStatementLines(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM statement_lines
		WHERE tenant_id = $1 AND matched_entry_id IS NULL AND posted_on BETWEEN $2 AND $3;`,
		tenantID, from, to).Scan(&n)
	if err != nil {
		return 0, mapPgError(err, "failed to count unmatched statement lines")
	}
	return n, nil
}
