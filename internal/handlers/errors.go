package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_core/internal/apperrors"
	"github.com/SscSPs/finance_core/internal/core/domain"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/SscSPs/finance_core/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// identityFromRequest returns the caller set by AuthMiddleware, or writes a 401.
func identityFromRequest(c *gin.Context, logger *slog.Logger) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		logger.Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Identity{}, false
	}
	return identity, true
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	var imbalance *accounting.ReconciliationImbalanceError
	if errors.As(err, &imbalance) {
		return http.StatusUnprocessableEntity
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnbalanced), errors.Is(err, apperrors.ErrReconciliationImbalance):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondWithError logs err and writes the matching status. Internal errors are
// reported to the client as fallback only.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	var imbalance *accounting.ReconciliationImbalanceError
	if errors.As(err, &imbalance) {
		c.JSON(status, gin.H{
			"error":             err.Error(),
			"bookBalance":       imbalance.BookBalance,
			"reconciledBalance": imbalance.ReconciledBalance,
			"statementBalance":  imbalance.StatementBalance,
			"difference":        imbalance.Difference,
		})
		return
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		c.JSON(status, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindingFailed writes the 400 for a request that did not bind.
func bindingFailed(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.Warn("Failed to bind request for "+op, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
