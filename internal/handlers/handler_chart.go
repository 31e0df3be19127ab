package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// chartHandler handles chart of accounts requests.
type chartHandler struct {
	chartService portssvc.ChartSvcFacade
}

func newChartHandler(chartService portssvc.ChartSvcFacade) *chartHandler {
	return &chartHandler{chartService: chartService}
}

func registerChartRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade) {
	h := newChartHandler(chartService)

	charts := rg.Group("/charts-of-accounts")
	{
		charts.POST("", h.createChart)
		charts.GET("/:chart_id", h.getChart)
		charts.DELETE("/:chart_id", h.deactivateChart)
	}

	rg.GET("/groups/:group_id/chart", h.getGroupChart)
}

// createChart godoc
// @Summary Create a chart of accounts
// @Description Creates the chart of accounts for a group. A group owns at most one chart. Requires the ADMIN role.
// @Tags charts-of-accounts
// @Accept json
// @Produce json
// @Param chart body dto.CreateChartRequest true "Chart details"
// @Success 201 {object} MessageResponse{data=dto.ChartResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts [post]
func (h *chartHandler) createChart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	chart, err := h.chartService.CreateChart(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToChartResponse(chart), "chart of accounts created")
}

// getChart godoc
// @Summary Get a chart of accounts
// @Description Retrieves a chart the caller may see.
// @Tags charts-of-accounts
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Success 200 {object} DataResponse{data=dto.ChartResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id} [get]
func (h *chartHandler) getChart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	chart, err := h.chartService.GetChartByID(c.Request.Context(), c.Param("chart_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToChartResponse(chart))
}

// getGroupChart godoc
// @Summary Get a group's chart of accounts
// @Description Retrieves the chart owned by a group.
// @Tags charts-of-accounts
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} DataResponse{data=dto.ChartResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/chart [get]
func (h *chartHandler) getGroupChart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	chart, err := h.chartService.GetChartByGroupID(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToChartResponse(chart))
}

// deactivateChart godoc
// @Summary Deactivate a chart of accounts
// @Description Soft-deletes a chart. Blocked while it still has accounts. Requires the ADMIN role.
// @Tags charts-of-accounts
// @Produce json
// @Param chart_id path string true "Chart ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /charts-of-accounts/{chart_id} [delete]
func (h *chartHandler) deactivateChart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.chartService.DeactivateChart(c.Request.Context(), c.Param("chart_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "chart of accounts deactivated")
}
