package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/SscSPs/finance_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

// FindApprovalByID retrieves an approval by its ID.
func (r *PgxApprovalRepository) FindApprovalByID(ctx context.Context, tenantID, approvalID string) (*domain.Approval, error) {
	approval, err := scanApproval(r.Pool.QueryRow(ctx,
		`SELECT `+approvalColumns+` FROM approvals WHERE tenant_id = $1 AND approval_id = $2`,
		tenantID, approvalID))
	if err != nil {
		return nil, mapPgError(err, "failed to find approval "+approvalID)
	}
	return &approval, nil
}

// ListApprovals retrieves a page of approvals, newest request first.
func (r *PgxApprovalRepository) ListApprovals(ctx context.Context, tenantID string, status *domain.ApprovalStatus, limit int, nextToken *string) ([]domain.Approval, *string, error) {
	limit = pagination.NormalizeLimit(limit, 100)

	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE tenant_id = $1`
	args := []any{tenantID}
	if status != nil {
		args = append(args, *status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, cursor.SortDate, cursor.ID)
		n := len(args)
		query += ` AND (requested_at, approval_id) < ($` + strconv.Itoa(n-1) + `, $` + strconv.Itoa(n) + `)`
	}
	args = append(args, limit+1)
	query += ` ORDER BY requested_at DESC, approval_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to list approvals")
	}
	defer rows.Close()

	approvals := make([]domain.Approval, 0, limit+1)
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, nil, mapPgError(err, "failed to scan approval row")
		}
		approvals = append(approvals, approval)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "error iterating approval rows")
	}

	page, next := pagination.Page(approvals, limit, func(a domain.Approval) pagination.Cursor {
		return pagination.Cursor{SortDate: a.RequestedAt, CreatedAt: a.RequestedAt, ID: a.ApprovalID}
	})
	return page, next, nil
}

// ResolveApproval closes a requested approval and moves its set out of pending_approval.
func (r *PgxApprovalRepository) ResolveApproval(ctx context.Context, tenantID, approvalID string, status domain.ApprovalStatus, setStatus domain.TransactionSetStatus, deciderID, note string, at time.Time) (*domain.ApprovalResolution, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	approval, err := scanApproval(tx.QueryRow(ctx, `
		UPDATE approvals
		SET status = $1, decided_by = $2, decided_at = $3, decision_note = $4
		WHERE tenant_id = $5 AND approval_id = $6 AND status = 'requested'
		RETURNING `+approvalColumns,
		status, deciderID, at, note, tenantID, approvalID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		current, findErr := r.FindApprovalByID(ctx, tenantID, approvalID)
		if findErr != nil {
			return nil, findErr
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf("approval is already %s", current.Status))
	}
	if err != nil {
		return nil, mapPgError(err, "failed to resolve approval "+approvalID)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE transaction_sets
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND transaction_set_id = $5 AND status = $6;`,
		setStatus, at, deciderID, tenantID, approval.TransactionSetID, domain.TransactionSetPendingApproval,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to update transaction set after approval")
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewConflictError("transaction set is no longer pending approval")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &domain.ApprovalResolution{Approval: approval, SetStatus: setStatus}, nil
}
