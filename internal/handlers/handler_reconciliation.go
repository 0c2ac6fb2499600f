package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_core/internal/core/ports/services"
	"github.com/SscSPs/finance_core/internal/dto"
	"github.com/SscSPs/finance_core/internal/export"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxStatementUpload bounds an OFX upload.
const maxStatementUpload = 10 << 20

const defaultMatchWindowDays = 3

var reportContentTypes = map[string]string{
	export.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	export.FormatPDF:  "application/pdf",
}

type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// RegisterReconciliationRoutes registers bank reconciliation routes.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)
	member := middleware.RequireRole(domain.RoleMember)

	recs := rg.Group("/reconciliations")
	{
		recs.POST("", member, h.startSession)
		recs.GET("/:session_id", h.getSession)
		recs.POST("/:session_id/lines", member, h.addLines)
		recs.POST("/:session_id/lines/ofx", member, h.importOFX)
		recs.POST("/:session_id/matches", member, h.matchLine)
		recs.POST("/:session_id/auto-match", member, h.autoMatch)
		recs.POST("/:session_id/complete", member, h.complete)
		recs.GET("/:session_id/report.xlsx", h.exportReport(export.FormatXLSX))
		recs.GET("/:session_id/report.pdf", h.exportReport(export.FormatPDF))
	}
}

// startSession godoc
// @Summary Start a reconciliation session
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   session body dto.StartReconciliationRequest true "Account and statement"
// @Success 201 {object} domain.ReconciliationSession
// @Failure 400 {object} map[string]string "Invalid input format or currency mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to start reconciliation"
// @Security BearerAuth
// @Router /reconciliations [post]
func (h *reconciliationHandler) startSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StartReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "StartReconciliation", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	session, err := h.reconciliationService.StartSession(c.Request.Context(), identity, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to start reconciliation")
		return
	}

	logger.Info("Reconciliation started", slog.String("session_id", session.SessionID))
	c.JSON(http.StatusCreated, session)
}

// getSession godoc
// @Summary Get a reconciliation session
// @Tags reconciliations
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Success 200 {object} domain.ReconciliationSession
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reconciliation"
// @Security BearerAuth
// @Router /reconciliations/{session_id} [get]
func (h *reconciliationHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("session_id", sessionID))
	session, err := h.reconciliationService.GetSession(c.Request.Context(), identity, sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, session)
}

// addLines godoc
// @Summary Add statement lines
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   lines body dto.AddStatementLinesRequest true "Statement lines"
// @Success 200 {object} domain.ReconciliationSession
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already completed"
// @Failure 500 {object} map[string]string "Failed to add statement lines"
// @Security BearerAuth
// @Router /reconciliations/{session_id}/lines [post]
func (h *reconciliationHandler) addLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")
	var req dto.AddStatementLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "AddStatementLines", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("session_id", sessionID))
	session, err := h.reconciliationService.AddStatementLines(c.Request.Context(), identity, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to add statement lines")
		return
	}

	logger.Info("Statement lines added", slog.Int("lines", len(req.Lines)))
	c.JSON(http.StatusOK, session)
}

// importOFX godoc
// @Summary Import an OFX/QFX statement
// @Description Accepts a multipart upload in field "file" or the raw statement as the request body.
// @Tags reconciliations
// @Accept  multipart/form-data
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   file formData file false "OFX or QFX statement"
// @Success 200 {object} dto.ImportStatementResponse
// @Failure 400 {object} map[string]string "Statement could not be parsed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already completed"
// @Failure 500 {object} map[string]string "Failed to import statement"
// @Security BearerAuth
// @Router /reconciliations/{session_id}/lines/ofx [post]
func (h *reconciliationHandler) importOFX(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("session_id", sessionID))
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxStatementUpload)

	var statement io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			bindingFailed(c, logger, "ImportOFX", err)
			return
		}
		f, err := fh.Open()
		if err != nil {
			logger.Error("Failed to open uploaded statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded statement"})
			return
		}
		defer f.Close()
		statement = f
	}

	imported, err := h.reconciliationService.ImportOFX(c.Request.Context(), identity, sessionID, statement)
	if err != nil {
		respondWithError(c, logger, err, "Failed to import statement")
		return
	}

	logger.Info("Statement imported", slog.Int("imported", imported))
	c.JSON(http.StatusOK, dto.ImportStatementResponse{Imported: imported})
}

// matchLine godoc
// @Summary Match a statement line to a journal entry
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   match body dto.MatchLineRequest true "Line and entry"
// @Success 200 {object} domain.StatementLine
// @Failure 400 {object} map[string]string "Entry does not touch the account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Line or entry not found"
// @Failure 409 {object} map[string]string "Already matched or session completed"
// @Failure 500 {object} map[string]string "Failed to match statement line"
// @Security BearerAuth
// @Router /reconciliations/{session_id}/matches [post]
func (h *reconciliationHandler) matchLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")
	var req dto.MatchLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "MatchLine", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("session_id", sessionID), slog.String("line_id", req.LineID))
	line, err := h.reconciliationService.MatchLine(c.Request.Context(), identity, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to match statement line")
		return
	}

	logger.Info("Statement line matched", slog.String("journal_entry_id", req.JournalEntryID))
	c.JSON(http.StatusOK, line)
}

// autoMatch godoc
// @Summary Auto-match statement lines
// @Description Pairs lines with entries of equal amount inside the date window when exactly one candidate exists.
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   body body dto.AutoMatchRequest false "Window in days (default 3)"
// @Success 200 {object} dto.AutoMatchResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already completed"
// @Failure 500 {object} map[string]string "Failed to auto-match"
// @Security BearerAuth
// @Router /reconciliations/{session_id}/auto-match [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")
	var req dto.AutoMatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, logger, "AutoMatch", err)
			return
		}
	}
	window := defaultMatchWindowDays
	if req.WindowDays != nil {
		window = *req.WindowDays
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("session_id", sessionID), slog.Int("window_days", window))
	pairs, err := h.reconciliationService.AutoMatch(c.Request.Context(), identity, sessionID, window)
	if err != nil {
		respondWithError(c, logger, err, "Failed to auto-match")
		return
	}

	resp := dto.AutoMatchResponse{Matched: make([]dto.MatchPairResponse, len(pairs))}
	for i, p := range pairs {
		resp.Matched[i] = dto.MatchPairResponse{LineID: p.LineID, JournalEntryID: p.JournalEntryID}
	}
	logger.Info("Auto-match finished", slog.Int("matched", len(pairs)))
	c.JSON(http.StatusOK, resp)
}

// complete godoc
// @Summary Complete a reconciliation session
// @Description Fails with 422 and the balances when the statement does not reconcile, unless force is set.
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   body body dto.CompleteReconciliationRequest false "Force completion"
// @Success 200 {object} domain.ReconciliationResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already completed"
// @Failure 422 {object} map[string]interface{} "Statement does not reconcile"
// @Failure 500 {object} map[string]string "Failed to complete reconciliation"
// @Security BearerAuth
// @Router /reconciliations/{session_id}/complete [post]
func (h *reconciliationHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")
	var req dto.CompleteReconciliationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingFailed(c, logger, "CompleteReconciliation", err)
			return
		}
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("session_id", sessionID), slog.Bool("force", req.Force))
	result, err := h.reconciliationService.Complete(c.Request.Context(), identity, sessionID, req.Force)
	if err != nil {
		respondWithError(c, logger, err, "Failed to complete reconciliation")
		return
	}

	logger.Info("Reconciliation completed", slog.Bool("balanced", result.Balanced), slog.String("difference", result.Difference.String()))
	c.JSON(http.StatusOK, result)
}

// exportReport godoc
// @Summary Download a reconciliation report
// @Tags reconciliations
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce  application/pdf
// @Param   session_id path string true "Session ID"
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /reconciliations/{session_id}/report.xlsx [get]
// @Router /reconciliations/{session_id}/report.pdf [get]
func (h *reconciliationHandler) exportReport(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		sessionID := c.Param("session_id")

		identity, ok := identityFromRequest(c, logger)
		if !ok {
			return
		}

		logger = logger.With(slog.String("session_id", sessionID), slog.String("format", format))
		report, err := h.reconciliationService.ExportReport(c.Request.Context(), identity, sessionID, format)
		if err != nil {
			respondWithError(c, logger, err, "Failed to export report")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "reconciliation-"+sessionID+"."+format))
		c.Data(http.StatusOK, reportContentTypes[format], report)
	}
}
