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

type periodHandler struct {
	periodService portssvc.PeriodCloseSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodCloseSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// RegisterPeriodRoutes registers accounting period routes. Hard close is ADMIN only.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodCloseSvcFacade) {
	h := newPeriodHandler(periodService)
	member := middleware.RequireRole(domain.RoleMember)

	periods := rg.Group("/periods")
	{
		periods.POST("", member, h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:period_id", h.getPeriod)
		periods.GET("/:period_id/checklist", h.getChecklist)
		periods.POST("/:period_id/soft-close", member, h.softClose)
		periods.POST("/:period_id/close", middleware.RequireRole(domain.RoleAdmin), h.close)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period window"
// @Success 201 {object} domain.AccountingPeriod
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Overlaps an existing period"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "CreatePeriod", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), identity, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create period")
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusCreated, period)
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce  json
// @Success 200 {array} domain.AccountingPeriod
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), identity)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list periods")
		return
	}
	if periods == nil {
		periods = []domain.AccountingPeriod{}
	}
	c.JSON(http.StatusOK, periods)
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags periods
// @Produce  json
// @Param   period_id path string true "Period ID"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Security BearerAuth
// @Router /periods/{period_id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("period_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("period_id", periodID))
	period, err := h.periodService.GetPeriod(c.Request.Context(), identity, periodID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, period)
}

// getChecklist godoc
// @Summary Compute the close checklist
// @Description Counts drafts, pending approvals and unmatched statement lines inside the period.
// @Tags periods
// @Produce  json
// @Param   period_id path string true "Period ID"
// @Success 200 {object} domain.CloseChecklist
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to compute checklist"
// @Security BearerAuth
// @Router /periods/{period_id}/checklist [get]
func (h *periodHandler) getChecklist(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("period_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("period_id", periodID))
	checklist, err := h.periodService.GetChecklist(c.Request.Context(), identity, periodID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute checklist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"checklist": checklist, "warnings": checklist.Warnings()})
}

// softClose godoc
// @Summary Soft-close a period
// @Description Stores a checklist snapshot. Outstanding items are returned as warnings and never block.
// @Tags periods
// @Produce  json
// @Param   period_id path string true "Period ID"
// @Success 200 {object} domain.PeriodCloseResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not open"
// @Failure 500 {object} map[string]string "Failed to soft-close period"
// @Security BearerAuth
// @Router /periods/{period_id}/soft-close [post]
func (h *periodHandler) softClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("period_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("period_id", periodID))
	result, err := h.periodService.SoftClose(c.Request.Context(), identity, periodID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to soft-close period")
		return
	}

	logger.Info("Period soft-closed", slog.Int("warnings", len(result.Warnings)))
	c.JSON(http.StatusOK, result)
}

// close godoc
// @Summary Hard-close a period
// @Description Closes a soft-closed period once no drafts or pending approvals remain in it.
// @Tags periods
// @Produce  json
// @Param   period_id path string true "Period ID"
// @Success 200 {object} domain.PeriodCloseResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period cannot be closed yet"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /periods/{period_id}/close [post]
func (h *periodHandler) close(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("period_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("period_id", periodID))
	result, err := h.periodService.Close(c.Request.Context(), identity, periodID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close period")
		return
	}

	logger.Info("Period closed")
	c.JSON(http.StatusOK, result)
}
