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

// accountHandler handles HTTP requests related to accounts and account mappings.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	member := middleware.RequireRole(domain.RoleMember)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", member, h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
	}

	mappings := rg.Group("/account-mappings")
	{
		mappings.GET("", h.listMappings)
		mappings.PUT("/:mapping_key", member, h.upsertMapping)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a ledger account in the caller's tenant. The currency defaults to the tenant currency.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "CreateAccount", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("currency_code", req.CurrencyCode))

	account, err := h.accountService.CreateAccount(c.Request.Context(), identity, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	account, err := h.accountService.GetAccountByID(c.Request.Context(), identity, accountID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   offset query int false "Offset"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingFailed(c, logger, "ListAccounts", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), identity, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// listMappings godoc
// @Summary List account mappings
// @Description Lists the mapping keys posting intents may use instead of account IDs.
// @Tags accounts
// @Produce  json
// @Success 200 {array} domain.AccountMapping
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list account mappings"
// @Security BearerAuth
// @Router /account-mappings [get]
func (h *accountHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	mappings, err := h.accountService.ListMappings(c.Request.Context(), identity)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list account mappings")
		return
	}
	if mappings == nil {
		mappings = []domain.AccountMapping{}
	}

	c.JSON(http.StatusOK, mappings)
}

// upsertMapping godoc
// @Summary Point a mapping key at an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   mapping_key path string true "Mapping key, e.g. sales.revenue"
// @Param   mapping body dto.UpsertMappingRequest true "Target account"
// @Success 200 {object} domain.AccountMapping
// @Failure 400 {object} map[string]string "Invalid key or inactive account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to save account mapping"
// @Security BearerAuth
// @Router /account-mappings/{mapping_key} [put]
func (h *accountHandler) upsertMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mappingKey := c.Param("mapping_key")
	var req dto.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, logger, "UpsertMapping", err)
		return
	}

	identity, ok := identityFromRequest(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("mapping_key", mappingKey), slog.String("account_id", req.AccountID))
	mapping, err := h.accountService.UpsertMapping(c.Request.Context(), identity, mappingKey, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save account mapping")
		return
	}

	logger.Info("Account mapping saved")
	c.JSON(http.StatusOK, mapping)
}
