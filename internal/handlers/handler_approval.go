package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type approvalHandler struct {
	escalationService portssvc.EscalationSvcFacade
}

func newApprovalHandler(es portssvc.EscalationSvcFacade) *approvalHandler {
	return &approvalHandler{escalationService: es}
}

// RegisterApprovalRoutes registers escalation approval routes. Decisions are ADMIN only.
func RegisterApprovalRoutes(rg *gin.RouterGroup, escalationService portssvc.EscalationSvcFacade) {
	h := newApprovalHandler(escalationService)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("", h.listApprovals)
		approvals.GET("/:approval_id", h.getApproval)
		approvals.POST("/:approval_id/decision", middleware.RequireRole(domain.RoleAdmin), h.decide)
	}
}

// listApprovals godoc
// @Summary List approvals
// @Tags approvals
// @Produce  json
// @Param   status query string false "Filter by status" Enums(requested, granted, denied)
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListApprovalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list approvals"
// @Security BearerAuth
// @Router /approvals [get]
func (h *approvalHandler) listApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListApprovalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingFailed(c, logger, "ListApprovals", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	resp, err := h.escalationService.ListApprovals(c.Request.Context(), identity, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list approvals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getApproval godoc
// @Summary Get an approval
// @Tags approvals
// @Produce  json
// @Param   approval_id path string true "Approval ID"
// @Success 200 {object} domain.Approval
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Approval not found"
// @Failure 500 {object} map[string]string "Failed to retrieve approval"
// @Security BearerAuth
// @Router /approvals/{approval_id} [get]
func (h *approvalHandler) getApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approvalID := c.Param("approval_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("approval_id", approvalID))
	approval, err := h.escalationService.GetApproval(c.Request.Context(), identity, approvalID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve approval")
		return
	}
	c.JSON(http.StatusOK, approval)
}

// decide godoc
// @Summary Grant or deny an approval
// @Description Granting moves the transaction set to approved; denying returns it to draft.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   approval_id path string true "Approval ID"
// @Param   decision body dto.ApprovalDecisionRequest true "Decision"
// @Success 200 {object} domain.ApprovalResolution
// @Failure 400 {object} map[string]string "Invalid decision"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Approval not found"
// @Failure 409 {object} map[string]string "Approval already resolved"
// @Failure 500 {object} map[string]string "Failed to resolve approval"
// @Security BearerAuth
// @Router /approvals/{approval_id}/decision [post]
func (h *approvalHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approvalID := c.Param("approval_id")
	var req dto.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "ResolveApproval", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("approval_id", approvalID), slog.String("decision", req.Decision))
	resolution, err := h.escalationService.ResolveApproval(c.Request.Context(), identity, approvalID, domain.ApprovalDecision(req.Decision), req.Note)
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve approval")
		return
	}

	logger.Info("Approval resolved", slog.String("transaction_set_status", string(resolution.SetStatus)))
	c.JSON(http.StatusOK, resolution)
}
