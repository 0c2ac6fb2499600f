package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity classifies a ValidationIssue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ValidationIssue is a finding against a TransactionSet. Never mutated after creation.
type ValidationIssue struct {
	IssueID          string            `json:"issueID,omitempty" db:"issue_id"`
	TenantID         string            `json:"tenantID" db:"tenant_id"`
	TransactionSetID string            `json:"transactionSetID" db:"transaction_set_id"`
	RunID            string            `json:"runID,omitempty" db:"run_id"`
	Severity         Severity          `json:"severity" db:"severity"`
	Code             string            `json:"code" db:"code"`
	Message          string            `json:"message" db:"message"`
	Context          map[string]string `json:"context,omitempty" db:"context"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
}

// HasBlockingIssue reports whether any issue has error severity.
func HasBlockingIssue(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidationRun groups the issues produced by one invocation of the validation engine.
type ValidationRun struct {
	RunID            string
	TenantID         string
	TransactionSetID string
	Issues           []ValidationIssue
	RanAt            time.Time
	RanBy            string
}

// IssueResolution records the dismissal of a non-blocking issue.
type IssueResolution struct {
	ResolutionID string    `json:"resolutionID" db:"resolution_id"`
	IssueID      string    `json:"issueID" db:"issue_id"`
	TenantID     string    `json:"tenantID" db:"tenant_id"`
	Note         string    `json:"note" db:"note"`
	ResolvedBy   string    `json:"resolvedBy" db:"resolved_by"`
	ResolvedAt   time.Time `json:"resolvedAt" db:"resolved_at"`
}

// PeriodWindow is a non-open accounting period as seen by validation.
type PeriodWindow struct {
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
}

// Contains reports whether d falls within the window, inclusive on both ends.
func (w PeriodWindow) Contains(d time.Time) bool {
	day := truncateDay(d)
	return !day.Before(truncateDay(w.StartDate)) && !day.After(truncateDay(w.EndDate))
}

// TenantConfig is the tenant-specific input to the validation engine.
type TenantConfig struct {
	CurrencyCode          string
	MinorUnits            int32
	DocumentRequiredTypes []BusinessTransactionType
	ApprovalThreshold     decimal.Decimal // zero disables the threshold rule
	Periods               []PeriodWindow
}

// RequiresDocument reports whether t needs an evidentiary document.
func (c TenantConfig) RequiresDocument(t BusinessTransactionType) bool {
	for _, required := range c.DocumentRequiredTypes {
		if required == t {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
