package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the permanent double-entry ledger record. Immutable and undeletable.
type JournalEntry struct {
	JournalEntryID   string        `json:"journalEntryID" db:"journal_entry_id"`
	TenantID         string        `json:"tenantID" db:"tenant_id"`
	PostingIntentID  *string       `json:"postingIntentID,omitempty" db:"posting_intent_id"`
	TransactionSetID *string       `json:"transactionSetID,omitempty" db:"transaction_set_id"`
	EntryDate        time.Time     `json:"entryDate" db:"entry_date"`
	CurrencyCode     string        `json:"currencyCode" db:"currency_code"`
	Description      string        `json:"description" db:"description"`
	Lines            []JournalLine `json:"lines" db:"-"`
	Reversal         *ReversalLink `json:"reversal,omitempty" db:"-"`   // set when this entry offsets another
	ReversedBy       *ReversalLink `json:"reversedBy,omitempty" db:"-"` // set when another entry offsets this one
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	CreatedBy        string        `json:"createdBy" db:"created_by"`
}

// JournalLine carries exactly one of Debit or Credit as a non-negative amount.
type JournalLine struct {
	JournalLineID  string          `json:"journalLineID" db:"journal_line_id"`
	JournalEntryID string          `json:"journalEntryID" db:"journal_entry_id"`
	TenantID       string          `json:"tenantID" db:"tenant_id"`
	Sequence       int             `json:"sequence" db:"sequence"`
	AccountID      string          `json:"accountID" db:"account_id"`
	Debit          decimal.Decimal `json:"debit" db:"debit"`
	Credit         decimal.Decimal `json:"credit" db:"credit"`
	Memo           string          `json:"memo,omitempty" db:"memo"`
}

// Side returns the side the line posts to.
func (l JournalLine) Side() EntrySide {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the non-zero side's amount.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// ReversalLink points from a reversing entry to the entry it offsets.
type ReversalLink struct {
	ReversalLinkID   string    `json:"reversalLinkID" db:"reversal_link_id"`
	TenantID         string    `json:"tenantID" db:"tenant_id"`
	ReversingEntryID string    `json:"reversingEntryID" db:"reversing_entry_id"`
	ReversedEntryID  string    `json:"reversedEntryID" db:"reversed_entry_id"`
	Reason           string    `json:"reason" db:"reason"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	CreatedBy        string    `json:"createdBy" db:"created_by"`
}

// LedgerLine is a journal line projected for balance computations on one account.
type LedgerLine struct {
	JournalEntryID string          `db:"journal_entry_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
}
