package posting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/SscSPs/finance_core/internal/repositories/database/pgsql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStore is the PostgreSQL ledger store. It holds the only statements in the
// codebase that insert into journal_entries, journal_lines and reversal_links.
type PgxStore struct {
	pgsql.BaseRepository
}

// NewPgxStore creates a ledger store on the shared pool.
func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{BaseRepository: pgsql.BaseRepository{Pool: pool}}
}

var (
	_ Store                        = (*PgxStore)(nil)
	_ portsrepo.TransactionManager = (*PgxStore)(nil)
)

// ledgerQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type ledgerQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PgxStore) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx)

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

func (s *PgxStore) FindJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findJournalEntry(ctx, s.Pool, tenantID, entryID, false)
}

const journalEntryColumns = `journal_entry_id, tenant_id, posting_intent_id, transaction_set_id, entry_date,
	currency_code, description, created_at, created_by`

const reversalLinkColumns = `reversal_link_id, tenant_id, reversing_entry_id, reversed_entry_id, reason, created_at, created_by`

func scanReversalLink(row pgx.Row) (domain.ReversalLink, error) {
	var l domain.ReversalLink
	err := row.Scan(&l.ReversalLinkID, &l.TenantID, &l.ReversingEntryID, &l.ReversedEntryID, &l.Reason, &l.CreatedAt, &l.CreatedBy)
	return l, err
}

func findJournalEntry(ctx context.Context, q ledgerQuerier, tenantID, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND journal_entry_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var e domain.JournalEntry
	err := q.QueryRow(ctx, query, tenantID, entryID).Scan(
		&e.JournalEntryID,
		&e.TenantID,
		&e.PostingIntentID,
		&e.TransactionSetID,
		&e.EntryDate,
		&e.CurrencyCode,
		&e.Description,
		&e.CreatedAt,
		&e.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("journal entry not found")
	}
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to find journal entry "+entryID)
	}

	rows, err := q.Query(ctx, `
		SELECT journal_line_id, journal_entry_id, tenant_id, sequence, account_id, debit, credit, memo
		FROM journal_lines
		WHERE tenant_id = $1 AND journal_entry_id = $2
		ORDER BY sequence;`, tenantID, entryID)
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to query journal lines")
	}
	e.Lines, err = pgx.CollectRows(rows, pgx.RowToStructByPos[domain.JournalLine])
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to scan journal lines")
	}

	linkRows, err := q.Query(ctx, `
		SELECT `+reversalLinkColumns+`
		FROM reversal_links
		WHERE tenant_id = $1 AND (reversing_entry_id = $2 OR reversed_entry_id = $2);`, tenantID, entryID)
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to query reversal links")
	}
	links, err := pgx.CollectRows(linkRows, func(row pgx.CollectableRow) (domain.ReversalLink, error) {
		return scanReversalLink(row)
	})
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to scan reversal links")
	}
	for i := range links {
		link := links[i]
		if link.ReversingEntryID == entryID {
			e.Reversal = &link
		} else {
			e.ReversedBy = &link
		}
	}
	return &e, nil
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) LockPostingIntent(ctx context.Context, tenantID, intentID string) (*domain.PostingIntent, error) {
	var p domain.PostingIntent
	err := t.tx.QueryRow(ctx, `
		SELECT posting_intent_id, tenant_id, transaction_set_id, currency_code, description, entries,
		       journal_entry_id, accepted_at, created_at, created_by
		FROM posting_intents
		WHERE tenant_id = $1 AND posting_intent_id = $2
		FOR UPDATE;`, tenantID, intentID).Scan(
		&p.PostingIntentID,
		&p.TenantID,
		&p.TransactionSetID,
		&p.CurrencyCode,
		&p.Description,
		&p.Entries,
		&p.JournalEntryID,
		&p.AcceptedAt,
		&p.CreatedAt,
		&p.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("posting intent not found")
	}
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to lock posting intent "+intentID)
	}
	return &p, nil
}

func (t *pgxLedgerTx) LockTransactionSet(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error) {
	var s domain.TransactionSet
	err := t.tx.QueryRow(ctx, `
		SELECT transaction_set_id, tenant_id, status, business_date, source,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_sets
		WHERE tenant_id = $1 AND transaction_set_id = $2
		FOR UPDATE;`, tenantID, setID).Scan(
		&s.TransactionSetID,
		&s.TenantID,
		&s.Status,
		&s.BusinessDate,
		&s.Source,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("transaction set not found")
	}
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to lock transaction set "+setID)
	}
	return &s, nil
}

func (t *pgxLedgerTx) LatestRunHasErrors(ctx context.Context, tenantID, setID string) (bool, error) {
	var blocking bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM validation_issues
			WHERE tenant_id = $1 AND severity = $3 AND run_id = (
				SELECT run_id FROM validation_runs
				WHERE tenant_id = $1 AND transaction_set_id = $2
				ORDER BY run_number DESC
				LIMIT 1
			)
		);`, tenantID, setID, domain.SeverityError).Scan(&blocking)
	if err != nil {
		return false, pgsql.MapPgError(err, "failed to check blocking issues")
	}
	return blocking, nil
}

func (t *pgxLedgerTx) ResolveMappings(ctx context.Context, tenantID string, keys []string) (map[string]string, error) {
	resolved := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return resolved, nil
	}
	rows, err := t.tx.Query(ctx, `
		SELECT mapping_key, account_id FROM account_mappings
		WHERE tenant_id = $1 AND mapping_key = ANY($2);`, tenantID, keys)
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to resolve account mappings")
	}
	defer rows.Close()

	for rows.Next() {
		var key, accountID string
		if err := rows.Scan(&key, &accountID); err != nil {
			return nil, pgsql.MapPgError(err, "failed to scan account mapping")
		}
		resolved[key] = accountID
	}
	if err := rows.Err(); err != nil {
		return nil, pgsql.MapPgError(err, "error iterating account mappings")
	}
	return resolved, nil
}

func (t *pgxLedgerTx) FindAccounts(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	rows, err := t.tx.Query(ctx, `
		SELECT account_id, tenant_id, code, name, account_type, currency_code, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		FOR SHARE;`, tenantID, accountIDs)
	if err != nil {
		return nil, pgsql.MapPgError(err, "failed to query accounts")
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
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
		); err != nil {
			return nil, pgsql.MapPgError(err, "failed to scan account")
		}
		accounts[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, pgsql.MapPgError(err, "error iterating accounts")
	}
	return accounts, nil
}

func (t *pgxLedgerTx) FindJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findJournalEntry(ctx, t.tx, tenantID, entryID, false)
}

func (t *pgxLedgerTx) LockJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findJournalEntry(ctx, t.tx, tenantID, entryID, true)
}

// InsertJournalEntry writes the entry header and its lines in one batch.
func (t *pgxLedgerTx) InsertJournalEntry(ctx context.Context, e domain.JournalEntry) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+journalEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		e.JournalEntryID,
		e.TenantID,
		e.PostingIntentID,
		e.TransactionSetID,
		e.EntryDate,
		e.CurrencyCode,
		e.Description,
		e.CreatedAt,
		e.CreatedBy,
	)
	lineQuery := `
		INSERT INTO journal_lines (journal_line_id, journal_entry_id, tenant_id, sequence, account_id, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, l := range e.Lines {
		batch.Queue(lineQuery, l.JournalLineID, e.JournalEntryID, e.TenantID, l.Sequence, l.AccountID, l.Debit, l.Credit, l.Memo)
	}

	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		mapped := pgsql.MapPgError(err, "failed to insert journal entry "+e.JournalEntryID)
		if errors.Is(mapped, apperrors.ErrDuplicate) {
			return apperrors.NewConflictError("posting intent already has a journal entry")
		}
		return mapped
	}
	return nil
}

func (t *pgxLedgerTx) InsertReversalLink(ctx context.Context, l domain.ReversalLink) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO reversal_links (`+reversalLinkColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		l.ReversalLinkID, l.TenantID, l.ReversingEntryID, l.ReversedEntryID, l.Reason, l.CreatedAt, l.CreatedBy,
	)
	if err != nil {
		mapped := pgsql.MapPgError(err, "failed to insert reversal link")
		if errors.Is(mapped, apperrors.ErrDuplicate) {
			return apperrors.NewConflictError("journal entry is already reversed")
		}
		return mapped
	}
	return nil
}

func (t *pgxLedgerTx) AcceptPostingIntent(ctx context.Context, tenantID, intentID, entryID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE posting_intents
		SET journal_entry_id = $1, accepted_at = $2
		WHERE tenant_id = $3 AND posting_intent_id = $4 AND journal_entry_id IS NULL;`,
		entryID, at, tenantID, intentID)
	if err != nil {
		return pgsql.MapPgError(err, "failed to accept posting intent")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("posting intent is already accepted")
	}
	return nil
}

func (t *pgxLedgerTx) MarkTransactionSetPosted(ctx context.Context, tenantID, setID string, from domain.TransactionSetStatus, actorID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE transaction_sets
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND transaction_set_id = $5 AND status = $6;`,
		domain.TransactionSetPosted, at, actorID, tenantID, setID, from)
	if err != nil {
		return pgsql.MapPgError(err, "failed to mark transaction set posted")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(fmt.Sprintf("transaction set is no longer %s", from))
	}
	return nil
}
