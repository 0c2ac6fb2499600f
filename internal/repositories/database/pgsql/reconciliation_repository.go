package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const sessionColumns = `session_id, tenant_id, account_id, currency_code, statement_date, ending_balance, status, forced,
	book_balance, reconciled_balance, difference, completed_at, completed_by,
	created_at, created_by, last_updated_at, last_updated_by`

const statementLineColumns = `line_id, session_id, tenant_id, external_id, posted_on, description, amount,
	matched_entry_id, matched_at, matched_by`

func scanSession(row pgx.Row) (domain.ReconciliationSession, error) {
	var s domain.ReconciliationSession
	err := row.Scan(
		&s.SessionID,
		&s.TenantID,
		&s.AccountID,
		&s.CurrencyCode,
		&s.StatementDate,
		&s.EndingBalance,
		&s.Status,
		&s.Forced,
		&s.BookBalance,
		&s.ReconciledBalance,
		&s.Difference,
		&s.CompletedAt,
		&s.CompletedBy,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func scanStatementLine(row pgx.Row) (domain.StatementLine, error) {
	var l domain.StatementLine
	err := row.Scan(&l.LineID, &l.SessionID, &l.TenantID, &l.ExternalID, &l.PostedOn, &l.Description, &l.Amount, &l.MatchedEntryID, &l.MatchedAt, &l.MatchedBy)
	return l, err
}

// SaveSession inserts a new in-progress session.
func (r *PgxReconciliationRepository) SaveSession(ctx context.Context, s domain.ReconciliationSession) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO reconciliation_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`,
		s.SessionID,
		s.TenantID,
		s.AccountID,
		s.CurrencyCode,
		s.StatementDate,
		s.EndingBalance,
		s.Status,
		s.Forced,
		s.BookBalance,
		s.ReconciledBalance,
		s.Difference,
		s.CompletedAt,
		s.CompletedBy,
		s.CreatedAt,
		s.CreatedBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save reconciliation session")
}

// FindSessionByID retrieves a session and its statement lines.
func (r *PgxReconciliationRepository) FindSessionByID(ctx context.Context, tenantID, sessionID string) (*domain.ReconciliationSession, error) {
	session, err := scanSession(r.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM reconciliation_sessions WHERE tenant_id = $1 AND session_id = $2`,
		tenantID, sessionID))
	if err != nil {
		return nil, mapPgError(err, "failed to find reconciliation session "+sessionID)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+statementLineColumns+`
		FROM statement_lines
		WHERE tenant_id = $1 AND session_id = $2
		ORDER BY posted_on, line_id;`, tenantID, sessionID)
	if err != nil {
		return nil, mapPgError(err, "failed to query statement lines")
	}
	defer rows.Close()

	session.Lines = []domain.StatementLine{}
	for rows.Next() {
		line, err := scanStatementLine(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan statement line row")
		}
		session.Lines = append(session.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating statement line rows")
	}
	return &session, nil
}

// lockInProgress locks the session row and rejects completed sessions.
func lockInProgress(ctx context.Context, tx pgx.Tx, tenantID, sessionID string) error {
	var status domain.ReconciliationStatus
	err := tx.QueryRow(ctx,
		`SELECT status FROM reconciliation_sessions WHERE tenant_id = $1 AND session_id = $2 FOR UPDATE`,
		tenantID, sessionID).Scan(&status)
	if err != nil {
		return mapPgError(err, "failed to lock reconciliation session "+sessionID)
	}
	if status != domain.ReconciliationInProgress {
		return apperrors.NewConflictError(fmt.Sprintf("reconciliation session is %s", status))
	}
	return nil
}

// AddStatementLines appends lines to an in-progress session.
func (r *PgxReconciliationRepository) AddStatementLines(ctx context.Context, tenantID, sessionID string, lines []domain.StatementLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockInProgress(ctx, tx, tenantID, sessionID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO statement_lines (line_id, session_id, tenant_id, external_id, posted_on, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range lines {
		batch.Queue(query, l.LineID, sessionID, tenantID, l.ExternalID, l.PostedOn, l.Description, l.Amount)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError(err, "failed to insert statement lines")
	}
	return r.Commit(ctx, tx)
}

// MatchStatementLine pairs an unmatched line with a journal entry.
func (r *PgxReconciliationRepository) MatchStatementLine(ctx context.Context, tenantID, sessionID, lineID, journalEntryID, actorID string, at time.Time) (*domain.StatementLine, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := lockInProgress(ctx, tx, tenantID, sessionID); err != nil {
		return nil, err
	}

	line, err := scanStatementLine(tx.QueryRow(ctx, `
		UPDATE statement_lines
		SET matched_entry_id = $1, matched_at = $2, matched_by = $3
		WHERE tenant_id = $4 AND session_id = $5 AND line_id = $6 AND matched_entry_id IS NULL
		RETURNING `+statementLineColumns,
		journalEntryID, at, actorID, tenantID, sessionID, lineID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if qErr := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM statement_lines WHERE tenant_id = $1 AND session_id = $2 AND line_id = $3)`,
			tenantID, sessionID, lineID).Scan(&exists); qErr != nil {
			return nil, mapPgError(qErr, "failed to check statement line")
		}
		if !exists {
			return nil, apperrors.NewNotFoundError("statement line not found")
		}
		return nil, apperrors.NewConflictError("statement line is already matched")
	}
	if err != nil {
		if mapped := mapPgError(err, "failed to match statement line"); errors.Is(mapped, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("journal entry is already matched in this session")
		}
		return nil, mapPgError(err, "failed to match statement line")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &line, nil
}

// CompleteSession stores the balances and completes the session exactly once.
func (r *PgxReconciliationRepository) CompleteSession(ctx context.Context, s domain.ReconciliationSession) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE reconciliation_sessions
		SET status = $1, forced = $2, book_balance = $3, reconciled_balance = $4, difference = $5,
		    completed_at = $6, completed_by = $7, last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $10 AND session_id = $11 AND status = $12;`,
		domain.ReconciliationCompleted,
		s.Forced,
		s.BookBalance,
		s.ReconciledBalance,
		s.Difference,
		s.CompletedAt,
		s.CompletedBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
		s.TenantID,
		s.SessionID,
		domain.ReconciliationInProgress,
	)
	if err != nil {
		return mapPgError(err, "failed to complete reconciliation session")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("reconciliation session is already completed")
	}
	return nil
}

// ListLedgerLines returns the account's journal lines dated on or before upTo.
func (r *PgxReconciliationRepository) ListLedgerLines(ctx context.Context, tenantID, accountID string, upTo time.Time) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT jl.journal_entry_id, je.entry_date, jl.debit, jl.credit
		FROM journal_lines jl
		JOIN journal_entries je ON je.journal_entry_id = jl.journal_entry_id
		WHERE jl.tenant_id = $1 AND jl.account_id = $2 AND je.entry_date <= $3
		ORDER BY je.entry_date, jl.journal_entry_id, jl.sequence;`, tenantID, accountID, upTo)
	if err != nil {
		return nil, mapPgError(err, "failed to query ledger lines")
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.LedgerLine])
	if err != nil {
		return nil, mapPgError(err, "failed to scan ledger lines")
	}
	return lines, nil
}

// ListEntryNets returns each entry's signed net on the account dated on or before upTo.
func (r *PgxReconciliationRepository) ListEntryNets(ctx context.Context, tenantID, accountID string, upTo time.Time) ([]domain.EntryNet, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT je.journal_entry_id, je.entry_date, SUM(jl.debit - jl.credit) AS net
		FROM journal_lines jl
		JOIN journal_entries je ON je.journal_entry_id = jl.journal_entry_id
		WHERE jl.tenant_id = $1 AND jl.account_id = $2 AND je.entry_date <= $3
		GROUP BY je.journal_entry_id, je.entry_date
		ORDER BY je.entry_date, je.journal_entry_id;`, tenantID, accountID, upTo)
	if err != nil {
		return nil, mapPgError(err, "failed to query entry nets")
	}
	nets, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.EntryNet])
	if err != nil {
		return nil, mapPgError(err, "failed to scan entry nets")
	}
	return nets, nil
}
