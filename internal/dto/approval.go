package dto

import "github.com/SscSPs/finance_core/internal/core/domain"

// ApprovalDecisionRequest is the payload of POST /approvals/:approval_id/decision.
type ApprovalDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=grant deny"`
	Note     string `json:"note" binding:"max=500"`
}

// ListApprovalsParams defines the query parameters of GET /approvals.
type ListApprovalsParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=requested granted denied"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListApprovalsResponse is a page of approvals.
type ListApprovalsResponse struct {
	Approvals []domain.Approval `json:"approvals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
