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

type draftHandler struct {
	draftService portssvc.DraftIntakeSvcFacade
}

func newDraftHandler(ds portssvc.DraftIntakeSvcFacade) *draftHandler {
	return &draftHandler{draftService: ds}
}

// RegisterDraftRoutes registers draft intake and transaction set routes.
func RegisterDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftIntakeSvcFacade) {
	h := newDraftHandler(draftService)
	member := middleware.RequireRole(domain.RoleMember)

	rg.POST("/drafts", member, h.submitDraft)

	sets := rg.Group("/transaction-sets")
	{
		sets.GET("", h.listTransactionSets)
		sets.GET("/:set_id", h.getTransactionSet)
		sets.POST("/:set_id/revalidate", member, h.revalidate)
		sets.POST("/:set_id/void", member, h.void)
	}

	rg.POST("/issues/:issue_id/dismiss", member, h.dismissIssue)
}

// submitDraft godoc
// @Summary Submit a draft
// @Description Validates and stores business transactions, an optional document and an optional posting intent as one transaction set.
// @Description Validation issues are returned with the draft; they never reject it.
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   draft body dto.SubmitDraftRequest true "Draft contents"
// @Success 201 {object} domain.DraftResult
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to submit draft"
// @Security BearerAuth
// @Router /drafts [post]
func (h *draftHandler) submitDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "SubmitDraft", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger.Info("Received draft", slog.Int("transactions", len(req.Transactions)), slog.Bool("has_document", req.Document != nil))

	result, err := h.draftService.SubmitDraft(c.Request.Context(), identity, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to submit draft")
		return
	}

	logger.Info("Draft stored",
		slog.String("transaction_set_id", result.TransactionSetID),
		slog.String("status", string(result.Status)),
		slog.Int("issues", len(result.Issues)))
	c.JSON(http.StatusCreated, result)
}

// listTransactionSets godoc
// @Summary List transaction sets
// @Tags drafts
// @Produce  json
// @Param   status query string false "Filter by status" Enums(draft, pending_approval, approved, posted, void)
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListTransactionSetsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transaction sets"
// @Security BearerAuth
// @Router /transaction-sets [get]
func (h *draftHandler) listTransactionSets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionSetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingFailed(c, logger, "ListTransactionSets", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	resp, err := h.draftService.ListTransactionSets(c.Request.Context(), identity, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transaction sets")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransactionSet godoc
// @Summary Get a transaction set
// @Description Returns the set with its transactions, posting intent, issues and open approval.
// @Tags drafts
// @Produce  json
// @Param   set_id path string true "Transaction set ID"
// @Success 200 {object} domain.TransactionSetDetails
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction set not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction set"
// @Security BearerAuth
// @Router /transaction-sets/{set_id} [get]
func (h *draftHandler) getTransactionSet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	setID := c.Param("set_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_set_id", setID))
	details, err := h.draftService.GetTransactionSet(c.Request.Context(), identity, setID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transaction set")
		return
	}
	c.JSON(http.StatusOK, details)
}

// revalidate godoc
// @Summary Revalidate a transaction set
// @Description Runs validation again and re-applies the escalation gate.
// @Tags drafts
// @Produce  json
// @Param   set_id path string true "Transaction set ID"
// @Success 200 {object} dto.RevalidateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction set not found"
// @Failure 409 {object} map[string]string "Transaction set is not a draft"
// @Failure 500 {object} map[string]string "Failed to revalidate transaction set"
// @Security BearerAuth
// @Router /transaction-sets/{set_id}/revalidate [post]
func (h *draftHandler) revalidate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	setID := c.Param("set_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_set_id", setID))
	resp, err := h.draftService.RevalidateTransactionSet(c.Request.Context(), identity, setID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to revalidate transaction set")
		return
	}

	logger.Info("Transaction set revalidated", slog.String("status", string(resp.Status)), slog.Int("issues", len(resp.Issues)))
	c.JSON(http.StatusOK, resp)
}

// void godoc
// @Summary Void a transaction set
// @Description Abandons a set that has not been posted. Posted sets are reversed instead.
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   set_id path string true "Transaction set ID"
// @Param   body body dto.VoidTransactionSetRequest true "Reason"
// @Success 200 {object} domain.TransactionSet
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction set not found"
// @Failure 409 {object} map[string]string "Transaction set cannot be voided"
// @Failure 500 {object} map[string]string "Failed to void transaction set"
// @Security BearerAuth
// @Router /transaction-sets/{set_id}/void [post]
func (h *draftHandler) void(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	setID := c.Param("set_id")
	var req dto.VoidTransactionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "VoidTransactionSet", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("transaction_set_id", setID))
	set, err := h.draftService.VoidTransactionSet(c.Request.Context(), identity, setID, req.Reason)
	if err != nil {
		respondWithError(c, logger, err, "Failed to void transaction set")
		return
	}

	logger.Info("Transaction set voided")
	c.JSON(http.StatusOK, set)
}

// dismissIssue godoc
// @Summary Dismiss a validation issue
// @Description Records the dismissal of an info or warning issue. Errors cannot be dismissed.
// @Tags drafts
// @Accept  json
// @Produce  json
// @Param   issue_id path string true "Validation issue ID"
// @Param   body body dto.DismissIssueRequest false "Note"
// @Success 200 {object} domain.IssueResolution
// @Failure 400 {object} map[string]string "Issue cannot be dismissed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Issue not found"
// @Failure 500 {object} map[string]string "Failed to dismiss issue"
// @Security BearerAuth
// @Router /issues/{issue_id}/dismiss [post]
func (h *draftHandler) dismissIssue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	issueID := c.Param("issue_id")
	var req dto.DismissIssueRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, logger, "DismissIssue", err)
			return
		}
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("issue_id", issueID))
	resolution, err := h.draftService.DismissIssue(c.Request.Context(), identity, issueID, req.Note)
	if err != nil {
		respondWithError(c, logger, err, "Failed to dismiss issue")
		return
	}

	logger.Info("Validation issue dismissed")
	c.JSON(http.StatusOK, resolution)
}
