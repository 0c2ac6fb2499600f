package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus is the lifecycle state of a session. Sessions never reopen.
type ReconciliationStatus string

const (
	ReconciliationInProgress ReconciliationStatus = "in_progress"
	ReconciliationCompleted  ReconciliationStatus = "completed"
)

// ReconciliationSession is a reconciliation attempt for one account as of one statement date.
type ReconciliationSession struct {
	SessionID         string               `json:"sessionID" db:"session_id"`
	TenantID          string               `json:"tenantID" db:"tenant_id"`
	AccountID         string               `json:"accountID" db:"account_id"`
	CurrencyCode      string               `json:"currencyCode" db:"currency_code"`
	StatementDate     time.Time            `json:"statementDate" db:"statement_date"`
	EndingBalance     decimal.Decimal      `json:"endingBalance" db:"ending_balance"`
	Status            ReconciliationStatus `json:"status" db:"status"`
	Forced            bool                 `json:"forced" db:"forced"`
	BookBalance       decimal.NullDecimal  `json:"bookBalance" db:"book_balance"`
	ReconciledBalance decimal.NullDecimal  `json:"reconciledBalance" db:"reconciled_balance"`
	Difference        decimal.NullDecimal  `json:"difference" db:"difference"`
	CompletedAt       *time.Time           `json:"completedAt,omitempty" db:"completed_at"`
	CompletedBy       *string              `json:"completedBy,omitempty" db:"completed_by"`
	Lines             []StatementLine      `json:"lines,omitempty" db:"-"`
	AuditFields
}

// StatementLine is an externally reported bank line. Positive amounts are deposits.
type StatementLine struct {
	LineID         string          `json:"lineID" db:"line_id"`
	SessionID      string          `json:"sessionID" db:"session_id"`
	TenantID       string          `json:"tenantID" db:"tenant_id"`
	ExternalID     string          `json:"externalID" db:"external_id"`
	PostedOn       time.Time       `json:"postedOn" db:"posted_on"`
	Description    string          `json:"description" db:"description"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	MatchedEntryID *string         `json:"matchedEntryID,omitempty" db:"matched_entry_id"`
	MatchedAt      *time.Time      `json:"matchedAt,omitempty" db:"matched_at"`
	MatchedBy      *string         `json:"matchedBy,omitempty" db:"matched_by"`
}

// IsMatched reports whether the line is matched to a journal entry.
func (l StatementLine) IsMatched() bool {
	return l.MatchedEntryID != nil
}

// EntryNet is a journal entry's signed net (debit - credit) on one account.
type EntryNet struct {
	JournalEntryID string          `db:"journal_entry_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Net            decimal.Decimal `db:"net"`
}

// ReconciliationResult is the outcome of completing a session.
type ReconciliationResult struct {
	SessionID         string          `json:"sessionID"`
	Completed         bool            `json:"completed"`
	Balanced          bool            `json:"balanced"`
	Forced            bool            `json:"forced"`
	BookBalance       decimal.Decimal `json:"bookBalance"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	StatementBalance  decimal.Decimal `json:"statementBalance"`
	Difference        decimal.Decimal `json:"difference"`
}

// MatchPair is one line/entry pairing produced by auto-matching.
type MatchPair struct {
	LineID         string `json:"lineID"`
	JournalEntryID string `json:"journalEntryID"`
}
