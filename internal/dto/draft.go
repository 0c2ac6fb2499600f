package dto

import (
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitDraftRequest is the payload of POST /drafts.
// Tenant and actor are taken from the token; any tenant field in the body is ignored.
type SubmitDraftRequest struct {
	BusinessDate  time.Time           `json:"businessDate" binding:"required"`
	Source        string              `json:"source" binding:"max=64"`
	Transactions  []DraftTransaction  `json:"transactions" binding:"dive"`
	Document      *DraftDocument      `json:"document"`
	PostingIntent *DraftPostingIntent `json:"postingIntent"`
}

// DraftTransaction is one business transaction of a draft.
type DraftTransaction struct {
	Type       string      `json:"type" binding:"required,max=32"`
	OccurredOn time.Time   `json:"occurredOn" binding:"required"`
	Memo       string      `json:"memo"`
	Lines      []DraftLine `json:"lines" binding:"dive"`
}

// DraftLine is one line of a draft transaction. Quantity and unit price are optional.
type DraftLine struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Amount    decimal.Decimal  `json:"amount" binding:"required"`
	Metadata  map[string]any   `json:"metadata"`
}

// DraftDocument references an already stored artifact by its content hash.
type DraftDocument struct {
	ContentHash string           `json:"contentHash" binding:"required,max=128"`
	StorageKey  string           `json:"storageKey" binding:"required"`
	MimeType    string           `json:"mimeType" binding:"required"`
	Extraction  *DraftExtraction `json:"extraction"`
}

// DraftExtraction is an optional machine extraction of the document.
type DraftExtraction struct {
	ModelID    string          `json:"modelID" binding:"required"`
	Confidence decimal.Decimal `json:"confidence" binding:"decimal_nonneg"`
	Fields     map[string]any  `json:"fields"`
}

// DraftPostingIntent proposes how the draft will be booked.
type DraftPostingIntent struct {
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,len=3"`
	Description  string             `json:"description"`
	Entries      []DraftIntentEntry `json:"entries" binding:"required,min=2,dive"`
}

// DraftIntentEntry is one proposed posting. Exactly one of MappingKey or AccountID is set.
type DraftIntentEntry struct {
	MappingKey string          `json:"mappingKey" binding:"required_without=AccountID,excluded_with=AccountID"`
	AccountID  string          `json:"accountID"`
	Side       string          `json:"side" binding:"required,entry_side"`
	Amount     decimal.Decimal `json:"amount" binding:"required,decimal_nonneg"`
	Memo       string          `json:"memo"`
}

// ToIntentEntries converts request entries to domain entries.
func ToIntentEntries(entries []DraftIntentEntry) []domain.IntentEntry {
	out := make([]domain.IntentEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.IntentEntry{
			MappingKey: e.MappingKey,
			AccountID:  e.AccountID,
			Side:       domain.EntrySide(e.Side),
			Amount:     e.Amount,
			Memo:       e.Memo,
		}
	}
	return out
}

// ListTransactionSetsParams defines the query parameters of GET /transaction-sets.
type ListTransactionSetsParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=draft pending_approval approved posted void"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListTransactionSetsResponse is a page of transaction sets.
type ListTransactionSetsResponse struct {
	TransactionSets []domain.TransactionSet `json:"transactionSets"`
	NextToken       *string                 `json:"nextToken,omitempty"`
}

// RevalidateResponse is the outcome of a new validation run.
type RevalidateResponse struct {
	TransactionSetID string                      `json:"transactionSetID"`
	Status           domain.TransactionSetStatus `json:"status"`
	ApprovalID       *string                     `json:"approvalID,omitempty"`
	Issues           []domain.ValidationIssue    `json:"issues"`
}

// VoidTransactionSetRequest is the payload of POST /transaction-sets/:set_id/void.
type VoidTransactionSetRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// DismissIssueRequest is the payload of POST /issues/:issue_id/dismiss.
type DismissIssueRequest struct {
	Note string `json:"note" binding:"max=500"`
}
