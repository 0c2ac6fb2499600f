package domain

import "time"

// ApprovalStatus is the lifecycle state of an Approval: requested -> granted | denied.
type ApprovalStatus string

const (
	ApprovalRequested ApprovalStatus = "requested"
	ApprovalGranted   ApprovalStatus = "granted"
	ApprovalDenied    ApprovalStatus = "denied"
)

// ApprovalDecision is the administrator's verdict.
type ApprovalDecision string

const (
	DecisionGrant ApprovalDecision = "grant"
	DecisionDeny  ApprovalDecision = "deny"
)

// Approval is an escalation record blocking a TransactionSet until a role holder acts.
type Approval struct {
	ApprovalID       string         `json:"approvalID" db:"approval_id"`
	TenantID         string         `json:"tenantID" db:"tenant_id"`
	TransactionSetID string         `json:"transactionSetID" db:"transaction_set_id"`
	RequiredRole     TenantRole     `json:"requiredRole" db:"required_role"`
	Status           ApprovalStatus `json:"status" db:"status"`
	Reason           string         `json:"reason" db:"reason"`
	RequestedBy      string         `json:"requestedBy" db:"requested_by"`
	RequestedAt      time.Time      `json:"requestedAt" db:"requested_at"`
	DecidedBy        *string        `json:"decidedBy,omitempty" db:"decided_by"`
	DecidedAt        *time.Time     `json:"decidedAt,omitempty" db:"decided_at"`
	DecisionNote     string         `json:"decisionNote,omitempty" db:"decision_note"`
}

// IsOpen reports whether the approval still awaits a decision.
func (a Approval) IsOpen() bool {
	return a.Status == ApprovalRequested
}

// ApprovalResolution is the outcome of granting or denying an approval.
type ApprovalResolution struct {
	Approval  Approval             `json:"approval"`
	SetStatus TransactionSetStatus `json:"transactionSetStatus"`
}

// GateDecision is the Escalation Gate's verdict on a validation outcome.
type GateDecision struct {
	Escalate bool     `json:"escalate"`
	Reasons  []string `json:"reasons,omitempty"` // codes of the blocking issues
}
