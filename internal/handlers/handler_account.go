package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// accountHandler handles account requests within a chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/charts-of-accounts/:chart_id/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates an account in a chart after code uniqueness and hierarchy validation. Requires the ADMIN role.
// @Tags accounts
// @Accept json
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} MessageResponse{data=dto.AccountResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("chart_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToAccountResponse(account), "account created")
}

// listAccounts godoc
// @Summary List a chart's accounts
// @Description Retrieves a page of a chart's accounts ordered by code.
// @Tags accounts
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param postable query bool false "Filter by postable flag"
// @Success 200 {object} ListResponse{data=[]dto.AccountResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	accounts, total, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("chart_id"), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListAccountResponse(accounts), params.Page, params.Limit, total)
}

// getAccountTree godoc
// @Summary Get the account hierarchy
// @Description Retrieves all active accounts of a chart assembled into a tree.
// @Tags accounts
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Success 200 {object} DataResponse{data=[]dto.AccountNodeResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id}/accounts/tree [get]
func (h *accountHandler) getAccountTree(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tree, err := h.accountService.GetAccountTree(c.Request.Context(), c.Param("chart_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToAccountTreeResponse(tree))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account scoped to its chart.
// @Tags accounts
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} DataResponse{data=dto.AccountResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("chart_id"), c.Param("account_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies a partial update to an account. Requires the ADMIN role.
// @Tags accounts
// @Accept json
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} MessageResponse{data=dto.AccountResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("chart_id"), c.Param("account_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToAccountResponse(account), "account updated")
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes an account. Blocked while it has subaccounts or journal lines. Requires the ADMIN role.
// @Tags accounts
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("chart_id"), c.Param("account_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "account deactivated")
}
