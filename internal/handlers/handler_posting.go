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

type postingHandler struct {
	postingService portssvc.PostingSvc
}

func newPostingHandler(ps portssvc.PostingSvc) *postingHandler {
	return &postingHandler{postingService: ps}
}

// RegisterPostingRoutes registers the ledger routes. Posting and reversing are the only ledger writes.
func RegisterPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvc) {
	h := newPostingHandler(postingService)
	member := middleware.RequireRole(domain.RoleMember)

	rg.POST("/posting-intents/:intent_id/post", member, h.post)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("/:entry_id", h.getJournalEntry)
		entries.POST("/:entry_id/reverse", member, h.reverse)
	}
}

// post godoc
// @Summary Post a posting intent
// @Description Books the intent as a balanced journal entry. Posting the same intent again returns the original entry.
// @Tags ledger
// @Produce  json
// @Param   intent_id path string true "Posting intent ID"
// @Success 201 {object} domain.JournalEntry
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Posting intent not found"
// @Failure 409 {object} map[string]string "Transaction set is not eligible for posting"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Failure 500 {object} map[string]string "Failed to post"
// @Security BearerAuth
// @Router /posting-intents/{intent_id}/post [post]
func (h *postingHandler) post(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	intentID := c.Param("intent_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("posting_intent_id", intentID))
	entry, err := h.postingService.Post(c.Request.Context(), identity, intentID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post")
		return
	}

	logger.Info("Posting intent posted", slog.String("journal_entry_id", entry.JournalEntryID))
	c.JSON(http.StatusCreated, entry)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags ledger
// @Produce  json
// @Param   entry_id path string true "Journal entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entry_id} [get]
func (h *postingHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("journal_entry_id", entryID))
	entry, err := h.postingService.GetJournalEntry(c.Request.Context(), identity, entryID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// reverse godoc
// @Summary Reverse a journal entry
// @Description Books an offsetting entry linked to the original. An entry can be reversed once.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Journal entry ID"
// @Param   body body dto.ReverseJournalEntryRequest true "Reason"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entry_id}/reverse [post]
func (h *postingHandler) reverse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")
	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "ReverseJournalEntry", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("journal_entry_id", entryID))
	reversal, err := h.postingService.Reverse(c.Request.Context(), identity, entryID, req.Reason)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("reversal_entry_id", reversal.JournalEntryID))
	c.JSON(http.StatusCreated, reversal)
}
