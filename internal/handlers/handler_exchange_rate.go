package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// exchangeRateHandler handles exchange rate requests.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rateService portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rateService}
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rg.POST("/groups/:group_id/exchange-rates", h.createRate)
	rg.GET("/groups/:group_id/exchange-rates", h.listRates)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("/:rate_id", h.getRate)
		rates.DELETE("/:rate_id", h.deleteRate)
	}
}

// createRate godoc
// @Summary Create an exchange rate
// @Description Creates a rate from a source currency into the group's base currency for a date.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param rate body dto.CreateExchangeRateRequest true "Rate details"
// @Success 201 {object} MessageResponse{data=dto.ExchangeRateResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/exchange-rates [post]
func (h *exchangeRateHandler) createRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToExchangeRateResponse(rate), "exchange rate created")
}

// listRates godoc
// @Summary List a group's exchange rates
// @Description Retrieves a page of a group's rates, newest date first.
// @Tags exchange-rates
// @Produce json
// @Param group_id path string true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param sourceCurrency query string false "Filter by source currency"
// @Success 200 {object} ListResponse{data=[]dto.ExchangeRateResponse}
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	rates, total, err := h.rateService.ListExchangeRates(c.Request.Context(), c.Param("group_id"), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListExchangeRateResponse(rates), params.Page, params.Limit, total)
}

// getRate godoc
// @Summary Get an exchange rate
// @Description Retrieves a rate the caller may see.
// @Tags exchange-rates
// @Produce json
// @Param rate_id path string true "Rate ID"
// @Success 200 {object} DataResponse{data=dto.ExchangeRateResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rate_id} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.rateService.GetExchangeRateByID(c.Request.Context(), c.Param("rate_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteRate godoc
// @Summary Delete an exchange rate
// @Description Deletes a rate. Requires the ADMIN role.
// @Tags exchange-rates
// @Produce json
// @Param rate_id path string true "Rate ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rate_id} [delete]
func (h *exchangeRateHandler) deleteRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.rateService.DeleteExchangeRate(c.Request.Context(), c.Param("rate_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "exchange rate deleted")
}
