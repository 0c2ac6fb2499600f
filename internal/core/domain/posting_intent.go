package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a ledger line is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// IsValid reports whether s is DEBIT or CREDIT.
func (s EntrySide) IsValid() bool {
	return s == Debit || s == Credit
}

// Opposite returns the other side.
func (s EntrySide) Opposite() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// IntentEntry is one proposed posting. Either MappingKey or AccountID identifies the account.
type IntentEntry struct {
	MappingKey string          `json:"mappingKey,omitempty"`
	AccountID  string          `json:"accountID,omitempty"`
	Side       EntrySide       `json:"side"`
	Amount     decimal.Decimal `json:"amount"`
	Memo       string          `json:"memo,omitempty"`
}

// PostingIntent is the instruction the Posting Engine translates into a JournalEntry.
// Immutable once accepted: JournalEntryID and AcceptedAt are set exactly once.
type PostingIntent struct {
	PostingIntentID  string        `json:"postingIntentID" db:"posting_intent_id"`
	TenantID         string        `json:"tenantID" db:"tenant_id"`
	TransactionSetID string        `json:"transactionSetID" db:"transaction_set_id"`
	CurrencyCode     string        `json:"currencyCode" db:"currency_code"`
	Description      string        `json:"description" db:"description"`
	Entries          []IntentEntry `json:"entries" db:"entries"`
	JournalEntryID   *string       `json:"journalEntryID,omitempty" db:"journal_entry_id"`
	AcceptedAt       *time.Time    `json:"acceptedAt,omitempty" db:"accepted_at"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	CreatedBy        string        `json:"createdBy" db:"created_by"`
}

// IsAccepted reports whether the Posting Engine already consumed the intent.
func (p PostingIntent) IsAccepted() bool {
	return p.JournalEntryID != nil
}
