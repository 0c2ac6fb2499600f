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

type PgxTransactionSetRepository struct {
	BaseRepository
}

// newPgxTransactionSetRepository creates a repository for drafts and everything they own.
func newPgxTransactionSetRepository(pool *pgxpool.Pool) portsrepo.TransactionSetRepositoryFacade {
	return &PgxTransactionSetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionSetRepositoryFacade = (*PgxTransactionSetRepository)(nil)

const transactionSetColumns = `transaction_set_id, tenant_id, status, business_date, source,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionSet(row pgx.Row) (domain.TransactionSet, error) {
	var s domain.TransactionSet
	err := row.Scan(
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
	return s, err
}

const approvalColumns = `approval_id, tenant_id, transaction_set_id, required_role, status, reason,
	requested_by, requested_at, decided_by, decided_at, decision_note`

func scanApproval(row pgx.Row) (domain.Approval, error) {
	var a domain.Approval
	err := row.Scan(
		&a.ApprovalID,
		&a.TenantID,
		&a.TransactionSetID,
		&a.RequiredRole,
		&a.Status,
		&a.Reason,
		&a.RequestedBy,
		&a.RequestedAt,
		&a.DecidedBy,
		&a.DecidedAt,
		&a.DecisionNote,
	)
	return a, err
}

const documentColumns = `document_id, tenant_id, content_hash, storage_key, mime_type, created_at, created_by`

func scanDocument(row pgx.Row) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.DocumentID, &d.TenantID, &d.ContentHash, &d.StorageKey, &d.MimeType, &d.CreatedAt, &d.CreatedBy)
	return d, err
}

const issueColumns = `issue_id, tenant_id, transaction_set_id, run_id, severity, code, message, context, created_at`

func scanIssue(row pgx.Row) (domain.ValidationIssue, error) {
	var i domain.ValidationIssue
	err := row.Scan(&i.IssueID, &i.TenantID, &i.TransactionSetID, &i.RunID, &i.Severity, &i.Code, &i.Message, &i.Context, &i.CreatedAt)
	return i, err
}

// CreateDraftBatch persists the set, its transactions and lines, document, intent,
// first validation run and optional approval in a single database transaction.
func (r *PgxTransactionSetRepository) CreateDraftBatch(ctx context.Context, batch domain.DraftBatch) (*domain.DraftBatch, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	set := batch.Set
	setQuery := `
		INSERT INTO transaction_sets (` + transactionSetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, setQuery,
		set.TransactionSetID,
		set.TenantID,
		set.Status,
		set.BusinessDate,
		set.Source,
		set.CreatedAt,
		set.CreatedBy,
		set.LastUpdatedAt,
		set.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapPgError(err, "failed to insert transaction set "+set.TransactionSetID)
	}

	lineBatch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO business_transactions (business_transaction_id, transaction_set_id, tenant_id, sequence, transaction_type, occurred_on, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	lineQuery := `
		INSERT INTO business_transaction_lines (line_id, business_transaction_id, tenant_id, sequence, quantity, unit_price, amount, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, bt := range batch.Transactions {
		lineBatch.Queue(txnQuery,
			bt.BusinessTransactionID,
			bt.TransactionSetID,
			bt.TenantID,
			bt.Sequence,
			bt.Type,
			bt.OccurredOn,
			bt.Memo,
			bt.CreatedAt,
		)
		for _, line := range bt.Lines {
			lineBatch.Queue(lineQuery,
				line.LineID,
				line.BusinessTransactionID,
				line.TenantID,
				line.Sequence,
				line.Quantity,
				line.UnitPrice,
				line.Amount,
				line.Metadata,
			)
		}
	}
	if lineBatch.Len() > 0 {
		if err := tx.SendBatch(ctx, lineBatch).Close(); err != nil {
			return nil, mapPgError(err, "failed to insert business transactions for set "+set.TransactionSetID)
		}
	}

	if batch.Document != nil {
		doc, err := ensureDocument(ctx, tx, *batch.Document)
		if err != nil {
			return nil, err
		}
		batch.Document = &doc

		if batch.Extraction != nil {
			extraction := *batch.Extraction
			extraction.DocumentID = doc.DocumentID
			_, err := tx.Exec(ctx, `
				INSERT INTO document_extractions (extraction_id, document_id, tenant_id, model_id, confidence, fields, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
				extraction.ExtractionID,
				extraction.DocumentID,
				extraction.TenantID,
				extraction.ModelID,
				extraction.Confidence,
				extraction.Fields,
				extraction.CreatedAt,
			)
			if err != nil {
				return nil, mapPgError(err, "failed to insert document extraction")
			}
			batch.Extraction = &extraction
		}

		if batch.Link != nil {
			link := *batch.Link
			link.DocumentID = doc.DocumentID
			_, err := tx.Exec(ctx, `
				INSERT INTO document_links (link_id, document_id, tenant_id, entity_type, entity_id, created_at, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (document_id, entity_type, entity_id) DO NOTHING;`,
				link.LinkID,
				link.DocumentID,
				link.TenantID,
				link.EntityType,
				link.EntityID,
				link.CreatedAt,
				link.CreatedBy,
			)
			if err != nil {
				return nil, mapPgError(err, "failed to link document")
			}
			batch.Link = &link
		}
	}

	if intent := batch.PostingIntent; intent != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO posting_intents (posting_intent_id, tenant_id, transaction_set_id, currency_code, description, entries, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			intent.PostingIntentID,
			intent.TenantID,
			intent.TransactionSetID,
			intent.CurrencyCode,
			intent.Description,
			intent.Entries,
			intent.CreatedAt,
			intent.CreatedBy,
		)
		if err != nil {
			return nil, mapPgError(err, "failed to insert posting intent")
		}
	}

	if err := insertValidationRun(ctx, tx, batch.Run, 1); err != nil {
		return nil, err
	}

	if batch.Approval != nil {
		approval, err := ensureOpenApproval(ctx, tx, *batch.Approval)
		if err != nil {
			return nil, err
		}
		batch.Approval = &approval
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ensureDocument reuses the tenant's document with the same content hash.
func ensureDocument(ctx context.Context, q querier, doc domain.Document) (domain.Document, error) {
	stored, _, err := insertOrFetch(ctx, q, insertOrFetchQuery[domain.Document]{
		insertSQL: `
			INSERT INTO documents (` + documentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (tenant_id, content_hash) DO NOTHING
			RETURNING ` + documentColumns,
		insertArgs: []any{doc.DocumentID, doc.TenantID, doc.ContentHash, doc.StorageKey, doc.MimeType, doc.CreatedAt, doc.CreatedBy},
		selectSQL:  `SELECT ` + documentColumns + ` FROM documents WHERE tenant_id = $1 AND content_hash = $2`,
		selectArgs: []any{doc.TenantID, doc.ContentHash},
		scan:       scanDocument,
	})
	return stored, err
}

// ensureOpenApproval returns the set's open approval, creating it if there is none.
func ensureOpenApproval(ctx context.Context, q querier, approval domain.Approval) (domain.Approval, error) {
	stored, _, err := insertOrFetch(ctx, q, insertOrFetchQuery[domain.Approval]{
		insertSQL: `
			INSERT INTO approvals (` + approvalColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (transaction_set_id) WHERE status = 'requested' DO NOTHING
			RETURNING ` + approvalColumns,
		insertArgs: []any{
			approval.ApprovalID,
			approval.TenantID,
			approval.TransactionSetID,
			approval.RequiredRole,
			domain.ApprovalRequested,
			approval.Reason,
			approval.RequestedBy,
			approval.RequestedAt,
			nil,
			nil,
			"",
		},
		selectSQL:  `SELECT ` + approvalColumns + ` FROM approvals WHERE tenant_id = $1 AND transaction_set_id = $2 AND status = 'requested'`,
		selectArgs: []any{approval.TenantID, approval.TransactionSetID},
		scan:       scanApproval,
	})
	return stored, err
}

func findOpenApproval(ctx context.Context, q querier, tenantID, setID string) (*domain.Approval, error) {
	approval, err := scanApproval(q.QueryRow(ctx,
		`SELECT `+approvalColumns+` FROM approvals WHERE tenant_id = $1 AND transaction_set_id = $2 AND status = 'requested'`,
		tenantID, setID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err, "failed to find open approval for set "+setID)
	}
	return &approval, nil
}

func insertValidationRun(ctx context.Context, q querier, run domain.ValidationRun, runNumber int) error {
	_, err := q.Exec(ctx, `
		INSERT INTO validation_runs (run_id, tenant_id, transaction_set_id, run_number, ran_at, ran_by)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		run.RunID, run.TenantID, run.TransactionSetID, runNumber, run.RanAt, run.RanBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert validation run")
	}
	if len(run.Issues) == 0 {
		return nil
	}

	issueBatch := &pgx.Batch{}
	issueQuery := `
		INSERT INTO validation_issues (issue_id, tenant_id, transaction_set_id, run_id, position, severity, code, message, context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for i, issue := range run.Issues {
		issueBatch.Queue(issueQuery,
			issue.IssueID,
			issue.TenantID,
			issue.TransactionSetID,
			issue.RunID,
			i,
			issue.Severity,
			issue.Code,
			issue.Message,
			issue.Context,
			issue.CreatedAt,
		)
	}
	if err := q.SendBatch(ctx, issueBatch).Close(); err != nil {
		return mapPgError(err, "failed to insert validation issues")
	}
	return nil
}

// RecordValidationRun stores a re-validation under a row lock on the set.
func (r *PgxTransactionSetRepository) RecordValidationRun(ctx context.Context, run domain.ValidationRun, escalation *domain.Approval) (domain.TransactionSetStatus, *domain.Approval, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", nil, err
	}
	defer r.Rollback(ctx, tx)

	var status domain.TransactionSetStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM transaction_sets WHERE tenant_id = $1 AND transaction_set_id = $2 FOR UPDATE`,
		run.TenantID, run.TransactionSetID,
	).Scan(&status)
	if err != nil {
		return "", nil, mapPgError(err, "failed to lock transaction set "+run.TransactionSetID)
	}
	if status != domain.TransactionSetDraft && status != domain.TransactionSetPendingApproval {
		return "", nil, apperrors.NewConflictError(fmt.Sprintf("transaction set is %s and cannot be revalidated", status))
	}

	var runNumber int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(run_number), 0) + 1 FROM validation_runs WHERE transaction_set_id = $1`,
		run.TransactionSetID,
	).Scan(&runNumber)
	if err != nil {
		return "", nil, mapPgError(err, "failed to number validation run")
	}
	if err := insertValidationRun(ctx, tx, run, runNumber); err != nil {
		return "", nil, err
	}

	var open *domain.Approval
	if escalation != nil {
		if status == domain.TransactionSetDraft {
			_, err := tx.Exec(ctx, `
				UPDATE transaction_sets
				SET status = $1, last_updated_at = $2, last_updated_by = $3
				WHERE tenant_id = $4 AND transaction_set_id = $5 AND status = $6;`,
				domain.TransactionSetPendingApproval, run.RanAt, run.RanBy, run.TenantID, run.TransactionSetID, domain.TransactionSetDraft,
			)
			if err != nil {
				return "", nil, mapPgError(err, "failed to escalate transaction set")
			}
			status = domain.TransactionSetPendingApproval
		}
		approval, err := ensureOpenApproval(ctx, tx, *escalation)
		if err != nil {
			return "", nil, err
		}
		open = &approval
	} else if status == domain.TransactionSetPendingApproval {
		open, err = findOpenApproval(ctx, tx, run.TenantID, run.TransactionSetID)
		if err != nil {
			return "", nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", nil, err
	}
	return status, open, nil
}

// UpdateTransactionSetStatus changes the status only when the set is in one of from.
// Voiding a set also closes its open approval.
func (r *PgxTransactionSetRepository) UpdateTransactionSetStatus(ctx context.Context, tenantID, setID string, from []domain.TransactionSetStatus, to domain.TransactionSetStatus, actorID string, at time.Time) (*domain.TransactionSet, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	set, err := scanTransactionSet(tx.QueryRow(ctx, `
		UPDATE transaction_sets
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $4 AND transaction_set_id = $5 AND status = ANY($6)
		RETURNING `+transactionSetColumns,
		to, at, actorID, tenantID, setID, allowed,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		current, findErr := r.FindTransactionSetByID(ctx, tenantID, setID)
		if findErr != nil {
			return nil, findErr
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf("transaction set is %s and cannot move to %s", current.Status, to))
	}
	if err != nil {
		return nil, mapPgError(err, "failed to update transaction set status")
	}

	if to == domain.TransactionSetVoid {
		_, err := tx.Exec(ctx, `
			UPDATE approvals
			SET status = $1, decided_by = $2, decided_at = $3, decision_note = 'transaction set voided'
			WHERE tenant_id = $4 AND transaction_set_id = $5 AND status = 'requested';`,
			domain.ApprovalDenied, actorID, at, tenantID, setID,
		)
		if err != nil {
			return nil, mapPgError(err, "failed to close approval of voided set")
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &set, nil
}

// SaveIssueResolution records a dismissal once.
func (r *PgxTransactionSetRepository) SaveIssueResolution(ctx context.Context, resolution domain.IssueResolution) (*domain.IssueResolution, error) {
	const cols = `resolution_id, issue_id, tenant_id, note, resolved_by, resolved_at`
	scan := func(row pgx.Row) (domain.IssueResolution, error) {
		var res domain.IssueResolution
		err := row.Scan(&res.ResolutionID, &res.IssueID, &res.TenantID, &res.Note, &res.ResolvedBy, &res.ResolvedAt)
		return res, err
	}
	stored, _, err := insertOrFetch(ctx, r.Pool, insertOrFetchQuery[domain.IssueResolution]{
		insertSQL: `
			INSERT INTO issue_resolutions (` + cols + `)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (issue_id) DO NOTHING
			RETURNING ` + cols,
		insertArgs: []any{resolution.ResolutionID, resolution.IssueID, resolution.TenantID, resolution.Note, resolution.ResolvedBy, resolution.ResolvedAt},
		selectSQL:  `SELECT ` + cols + ` FROM issue_resolutions WHERE tenant_id = $1 AND issue_id = $2`,
		selectArgs: []any{resolution.TenantID, resolution.IssueID},
		scan:       scan,
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindTransactionSetByID retrieves a set by its ID.
func (r *PgxTransactionSetRepository) FindTransactionSetByID(ctx context.Context, tenantID, setID string) (*domain.TransactionSet, error) {
	set, err := scanTransactionSet(r.Pool.QueryRow(ctx,
		`SELECT `+transactionSetColumns+` FROM transaction_sets WHERE tenant_id = $1 AND transaction_set_id = $2`,
		tenantID, setID))
	if err != nil {
		return nil, mapPgError(err, "failed to find transaction set "+setID)
	}
	return &set, nil
}

// FindIssueByID retrieves a validation issue by its ID.
func (r *PgxTransactionSetRepository) FindIssueByID(ctx context.Context, tenantID, issueID string) (*domain.ValidationIssue, error) {
	issue, err := scanIssue(r.Pool.QueryRow(ctx,
		`SELECT `+issueColumns+` FROM validation_issues WHERE tenant_id = $1 AND issue_id = $2`,
		tenantID, issueID))
	if err != nil {
		return nil, mapPgError(err, "failed to find validation issue "+issueID)
	}
	return &issue, nil
}

// ListTransactionSets retrieves a page of sets using keyset pagination.
func (r *PgxTransactionSetRepository) ListTransactionSets(ctx context.Context, tenantID string, status *domain.TransactionSetStatus, limit int, nextToken *string) ([]domain.TransactionSet, *string, error) {
	limit = pagination.NormalizeLimit(limit, 100)

	query := `SELECT ` + transactionSetColumns + ` FROM transaction_sets WHERE tenant_id = $1`
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
		args = append(args, cursor.SortDate, cursor.CreatedAt, cursor.ID)
		n := len(args)
		query += ` AND (business_date, created_at, transaction_set_id) < ($` + strconv.Itoa(n-2) + `, $` + strconv.Itoa(n-1) + `, $` + strconv.Itoa(n) + `)`
	}
	args = append(args, limit+1)
	query += ` ORDER BY business_date DESC, created_at DESC, transaction_set_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to list transaction sets")
	}
	defer rows.Close()

	sets := make([]domain.TransactionSet, 0, limit+1)
	for rows.Next() {
		set, err := scanTransactionSet(rows)
		if err != nil {
			return nil, nil, mapPgError(err, "failed to scan transaction set row")
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "error iterating transaction set rows")
	}

	page, next := pagination.Page(sets, limit, func(s domain.TransactionSet) pagination.Cursor {
		return pagination.Cursor{SortDate: s.BusinessDate, CreatedAt: s.CreatedAt, ID: s.TransactionSetID}
	})
	return page, next, nil
}

// FindTransactionSetDetails loads a set and everything needed to re-validate or display it.
func (r *PgxTransactionSetRepository) FindTransactionSetDetails(ctx context.Context, tenantID, setID string) (*domain.TransactionSetDetails, error) {
	set, err := r.FindTransactionSetByID(ctx, tenantID, setID)
	if err != nil {
		return nil, err
	}
	details := &domain.TransactionSetDetails{TransactionSet: *set}

	if details.Transactions, err = r.findTransactions(ctx, tenantID, setID); err != nil {
		return nil, err
	}
	if details.DocumentIDs, err = r.findDocumentIDs(ctx, tenantID, setID); err != nil {
		return nil, err
	}
	if details.PostingIntent, err = r.findPostingIntent(ctx, tenantID, setID); err != nil {
		return nil, err
	}
	if details.Issues, err = r.findLatestIssues(ctx, tenantID, setID); err != nil {
		return nil, err
	}
	if details.OpenApproval, err = findOpenApproval(ctx, r.Pool, tenantID, setID); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *PgxTransactionSetRepository) findTransactions(ctx context.Context, tenantID, setID string) ([]domain.BusinessTransaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT business_transaction_id, transaction_set_id, tenant_id, sequence, transaction_type, occurred_on, memo, created_at
		FROM business_transactions
		WHERE tenant_id = $1 AND transaction_set_id = $2
		ORDER BY sequence;`, tenantID, setID)
	if err != nil {
		return nil, mapPgError(err, "failed to query business transactions")
	}
	defer rows.Close()

	transactions := []domain.BusinessTransaction{}
	index := map[string]int{}
	for rows.Next() {
		var bt domain.BusinessTransaction
		if err := rows.Scan(&bt.BusinessTransactionID, &bt.TransactionSetID, &bt.TenantID, &bt.Sequence, &bt.Type, &bt.OccurredOn, &bt.Memo, &bt.CreatedAt); err != nil {
			return nil, mapPgError(err, "failed to scan business transaction row")
		}
		bt.Lines = []domain.BusinessTransactionLine{}
		index[bt.BusinessTransactionID] = len(transactions)
		transactions = append(transactions, bt)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating business transaction rows")
	}

	lineRows, err := r.Pool.Query(ctx, `
		SELECT l.line_id, l.business_transaction_id, l.tenant_id, l.sequence, l.quantity, l.unit_price, l.amount, l.metadata
		FROM business_transaction_lines l
		JOIN business_transactions bt ON bt.business_transaction_id = l.business_transaction_id
		WHERE bt.tenant_id = $1 AND bt.transaction_set_id = $2
		ORDER BY bt.sequence, l.sequence;`, tenantID, setID)
	if err != nil {
		return nil, mapPgError(err, "failed to query business transaction lines")
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l domain.BusinessTransactionLine
		if err := lineRows.Scan(&l.LineID, &l.BusinessTransactionID, &l.TenantID, &l.Sequence, &l.Quantity, &l.UnitPrice, &l.Amount, &l.Metadata); err != nil {
			return nil, mapPgError(err, "failed to scan business transaction line row")
		}
		if i, ok := index[l.BusinessTransactionID]; ok {
			transactions[i].Lines = append(transactions[i].Lines, l)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating business transaction line rows")
	}
	return transactions, nil
}

func (r *PgxTransactionSetRepository) findDocumentIDs(ctx context.Context, tenantID, setID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT document_id FROM document_links
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY created_at;`, tenantID, domain.EntityTypeTransactionSet, setID)
	if err != nil {
		return nil, mapPgError(err, "failed to query document links")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapPgError(err, "failed to scan document links")
	}
	return ids, nil
}

func (r *PgxTransactionSetRepository) findPostingIntent(ctx context.Context, tenantID, setID string) (*domain.PostingIntent, error) {
	var p domain.PostingIntent
	err := r.Pool.QueryRow(ctx, `
		SELECT posting_intent_id, tenant_id, transaction_set_id, currency_code, description, entries,
		       journal_entry_id, accepted_at, created_at, created_by
		FROM posting_intents
		WHERE tenant_id = $1 AND transaction_set_id = $2;`, tenantID, setID).Scan(
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
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err, "failed to find posting intent for set "+setID)
	}
	return &p, nil
}

func (r *PgxTransactionSetRepository) findLatestIssues(ctx context.Context, tenantID, setID string) ([]domain.ValidationIssue, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+issueColumns+`
		FROM validation_issues
		WHERE tenant_id = $1 AND run_id = (
			SELECT run_id FROM validation_runs
			WHERE tenant_id = $1 AND transaction_set_id = $2
			ORDER BY run_number DESC
			LIMIT 1
		)
		ORDER BY position;`, tenantID, setID)
	if err != nil {
		return nil, mapPgError(err, "failed to query validation issues")
	}
	defer rows.Close()

	issues := []domain.ValidationIssue{}
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan validation issue row")
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating validation issue rows")
	}
	return issues, nil
}
