package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) WriteAuditEvent(ctx context.Context, e domain.AuditEvent) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO audit_log (event_id, tenant_id, actor_id, entity_type, entity_id, action, metadata, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING;`,
		e.EventID, e.TenantID, e.ActorID, e.EntityType, e.EntityID, e.Action, e.Metadata, e.OccurredAt,
	)
	return mapPgError(err, "failed to write audit event")
}

func (r *PgxAuditRepository) SaveDeadLetter(ctx context.Context, e domain.AuditEvent, attempts int, lastError string, at time.Time) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to encode dead letter", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO audit_dead_letters (event_id, tenant_id, payload, attempts, last_error, first_failed_at, last_failed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (event_id) DO UPDATE
		SET attempts = audit_dead_letters.attempts + EXCLUDED.attempts,
		    last_error = EXCLUDED.last_error,
		    last_failed_at = EXCLUDED.last_failed_at,
		    redelivered_at = NULL;`,
		e.EventID, e.TenantID, payload, attempts, lastError, at,
	)
	return mapPgError(err, "failed to save dead letter")
}

func (r *PgxAuditRepository) ListPendingDeadLetters(ctx context.Context, limit int) ([]domain.DeadLetter, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT payload, attempts, last_error, first_failed_at, last_failed_at
		FROM audit_dead_letters
		WHERE redelivered_at IS NULL
		ORDER BY first_failed_at, event_id
		LIMIT $1;`, limit)
	if err != nil {
		return nil, mapPgError(err, "failed to query dead letters")
	}
	defer rows.Close()

	letters := []domain.DeadLetter{}
	for rows.Next() {
		var (
			dl      domain.DeadLetter
			payload []byte
		)
		if err := rows.Scan(&payload, &dl.Attempts, &dl.LastError, &dl.FirstFailedAt, &dl.LastFailedAt); err != nil {
			return nil, mapPgError(err, "failed to scan dead letter row")
		}
		if err := json.Unmarshal(payload, &dl.Event); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, fmt.Sprintf("corrupt dead letter payload (attempts %d)", dl.Attempts), err)
		}
		letters = append(letters, dl)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating dead letter rows")
	}
	return letters, nil
}

func (r *PgxAuditRepository) MarkRedelivered(ctx context.Context, eventID string, at time.Time) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE audit_dead_letters SET redelivered_at = $1 WHERE event_id = $2 AND redelivered_at IS NULL`,
		at, eventID)
	return mapPgError(err, "failed to mark dead letter redelivered")
}

func (r *PgxAuditRepository) CountPendingDeadLetters(ctx context.Context) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_dead_letters WHERE redelivered_at IS NULL`).Scan(&n); err != nil {
		return 0, mapPgError(err, "failed to count dead letters")
	}
	return n, nil
}
