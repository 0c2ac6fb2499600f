package domain

import "time"

// TransactionSetStatus is the lifecycle state of a TransactionSet.
type TransactionSetStatus string

const (
	TransactionSetDraft           TransactionSetStatus = "draft"
	TransactionSetPendingApproval TransactionSetStatus = "pending_approval"
	// TransactionSetApproved is eligible for posting after an approval grant.
	TransactionSetApproved TransactionSetStatus = "approved"
	TransactionSetPosted   TransactionSetStatus = "posted"
	TransactionSetVoid     TransactionSetStatus = "void"
)

var transactionSetTransitions = map[TransactionSetStatus][]TransactionSetStatus{
	TransactionSetDraft:           {TransactionSetPendingApproval, TransactionSetPosted, TransactionSetVoid},
	TransactionSetPendingApproval: {TransactionSetApproved, TransactionSetDraft, TransactionSetVoid},
	TransactionSetApproved:        {TransactionSetPosted, TransactionSetVoid},
}

// IsValid reports whether s is a known status.
func (s TransactionSetStatus) IsValid() bool {
	switch s {
	case TransactionSetDraft, TransactionSetPendingApproval, TransactionSetApproved, TransactionSetPosted, TransactionSetVoid:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s TransactionSetStatus) IsTerminal() bool {
	return s == TransactionSetPosted || s == TransactionSetVoid
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s TransactionSetStatus) CanTransitionTo(next TransactionSetStatus) bool {
	for _, allowed := range transactionSetTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransactionSet is a batch of related business activity awaiting posting.
type TransactionSet struct {
	TransactionSetID string               `json:"transactionSetID" db:"transaction_set_id"`
	TenantID         string               `json:"tenantID" db:"tenant_id"`
	Status           TransactionSetStatus `json:"status" db:"status"`
	BusinessDate     time.Time            `json:"businessDate" db:"business_date"`
	Source           string               `json:"source" db:"source"`
	AuditFields
}

// EligibleForPosting reports whether the set may be posted given whether its
// latest validation run holds error-severity issues.
func (s TransactionSet) EligibleForPosting(hasBlockingIssues bool) bool {
	switch s.Status {
	case TransactionSetApproved:
		return true
	case TransactionSetDraft:
		return !hasBlockingIssues
	default:
		return false
	}
}

// TransactionSetDetails is a set together with everything it owns.
type TransactionSetDetails struct {
	TransactionSet
	Transactions  []BusinessTransaction `json:"transactions"`
	DocumentIDs   []string              `json:"documentIDs"`
	PostingIntent *PostingIntent        `json:"postingIntent,omitempty"`
	Issues        []ValidationIssue     `json:"issues"`
	OpenApproval  *Approval             `json:"openApproval,omitempty"`
}

// DraftBatch is everything Draft Intake persists as one atomic unit.
type DraftBatch struct {
	Set           TransactionSet
	Transactions  []BusinessTransaction
	Document      *Document
	Extraction    *DocumentExtraction
	Link          *DocumentLink
	PostingIntent *PostingIntent
	Run           ValidationRun
	Approval      *Approval
}

// DraftResult is returned to the submitter of a draft.
type DraftResult struct {
	TransactionSetID       string               `json:"transactionSetID"`
	Status                 TransactionSetStatus `json:"status"`
	BusinessTransactionIDs []string             `json:"businessTransactionIDs"`
	LineIDs                []string             `json:"lineIDs"`
	DocumentID             *string              `json:"documentID,omitempty"`
	PostingIntentID        *string              `json:"postingIntentID,omitempty"`
	ApprovalID             *string              `json:"approvalID,omitempty"`
	Issues                 []ValidationIssue    `json:"issues"`
}
