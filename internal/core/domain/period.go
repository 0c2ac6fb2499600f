package domain

import (
	"fmt"
	"time"
)

// PeriodStatus is the lifecycle state of an AccountingPeriod.
type PeriodStatus string

const (
	PeriodOpen       PeriodStatus = "open"
	PeriodSoftClosed PeriodStatus = "soft_closed"
	PeriodClosed     PeriodStatus = "closed"
)

// AccountingPeriod is a calendar window whose closing is gated by a checklist.
type AccountingPeriod struct {
	PeriodID     string          `json:"periodID" db:"period_id"`
	TenantID     string          `json:"tenantID" db:"tenant_id"`
	Name         string          `json:"name" db:"name"`
	StartDate    time.Time       `json:"startDate" db:"start_date"`
	EndDate      time.Time       `json:"endDate" db:"end_date"`
	Status       PeriodStatus    `json:"status" db:"status"`
	Checklist    *CloseChecklist `json:"checklist,omitempty" db:"checklist"`
	SoftClosedAt *time.Time      `json:"softClosedAt,omitempty" db:"soft_closed_at"`
	SoftClosedBy *string         `json:"softClosedBy,omitempty" db:"soft_closed_by"`
	ClosedAt     *time.Time      `json:"closedAt,omitempty" db:"closed_at"`
	ClosedBy     *string         `json:"closedBy,omitempty" db:"closed_by"`
	AuditFields
}

// CloseChecklist is the outstanding-items snapshot for a period.
type CloseChecklist struct {
	DraftTransactions int       `json:"draftTransactions"`
	PendingApprovals  int       `json:"pendingApprovals"`
	UnmatchedPayments int       `json:"unmatchedPayments"`
	ComputedAt        time.Time `json:"computedAt"`
}

// Warnings lists a human-readable warning for every nonzero count.
func (c CloseChecklist) Warnings() []string {
	warnings := []string{}
	if c.DraftTransactions > 0 {
		warnings = append(warnings, fmt.Sprintf("%d transaction set(s) are still in draft", c.DraftTransactions))
	}
	if c.PendingApprovals > 0 {
		warnings = append(warnings, fmt.Sprintf("%d transaction set(s) are awaiting approval", c.PendingApprovals))
	}
	if c.UnmatchedPayments > 0 {
		warnings = append(warnings, fmt.Sprintf("%d bank statement line(s) are unmatched", c.UnmatchedPayments))
	}
	return warnings
}

// IsClear reports whether nothing blocks a hard close.
func (c CloseChecklist) IsClear() bool {
	return c.DraftTransactions == 0 && c.PendingApprovals == 0
}

// PeriodCloseResult is returned by soft-close.
type PeriodCloseResult struct {
	Period    AccountingPeriod `json:"period"`
	Checklist CloseChecklist   `json:"checklist"`
	Warnings  []string         `json:"warnings"`
}
