package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartReconciliationRequest opens a session for one account and statement date.
type StartReconciliationRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	StatementDate time.Time       `json:"statementDate" binding:"required"`
	EndingBalance decimal.Decimal `json:"endingBalance" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"omitempty,len=3"`
}

// StatementLineRequest is one bank statement line. Positive amounts are deposits.
type StatementLineRequest struct {
	ExternalID  string          `json:"externalID" binding:"max=128"`
	PostedOn    time.Time       `json:"postedOn" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// AddStatementLinesRequest is the payload of POST /reconciliations/:session_id/lines.
type AddStatementLinesRequest struct {
	Lines []StatementLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// MatchLineRequest pairs a statement line with a journal entry.
type MatchLineRequest struct {
	LineID         string `json:"lineID" binding:"required"`
	JournalEntryID string `json:"journalEntryID" binding:"required"`
}

// AutoMatchRequest tunes automatic matching. WindowDays defaults to 3.
type AutoMatchRequest struct {
	WindowDays *int `json:"windowDays" binding:"omitempty,min=0,max=31"`
}

// AutoMatchResponse lists the pairs created.
type AutoMatchResponse struct {
	Matched []MatchPairResponse `json:"matched"`
}

// MatchPairResponse is one created pairing.
type MatchPairResponse struct {
	LineID         string `json:"lineID"`
	JournalEntryID string `json:"journalEntryID"`
}

// CompleteReconciliationRequest is the payload of POST /reconciliations/:session_id/complete.
type CompleteReconciliationRequest struct {
	Force bool `json:"force"`
}

// ImportStatementResponse reports how many lines an OFX upload added.
type ImportStatementResponse struct {
	Imported int `json:"imported"`
}
