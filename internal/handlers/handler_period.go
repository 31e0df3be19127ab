package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// periodHandler handles accounting period requests.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	rg.POST("/groups/:group_id/periods", h.createPeriod)
	rg.GET("/groups/:group_id/periods", h.listPeriods)

	periods := rg.Group("/periods")
	{
		periods.GET("/:period_id", h.getPeriod)
		periods.DELETE("/:period_id", h.deletePeriod)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Description Creates a fiscal year or month period after combination and overlap validation. Requires the ADMIN role.
// @Tags periods
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} MessageResponse{data=dto.PeriodResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToPeriodResponse(period), "period created")
}

// listPeriods godoc
// @Summary List a group's periods
// @Description Retrieves a page of a group's periods, newest first.
// @Tags periods
// @Produce json
// @Param group_id path string true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param type query string false "Filter by period type" Enums(FISCAL_YEAR, MONTH)
// @Success 200 {object} ListResponse{data=[]dto.PeriodResponse}
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	periods, total, err := h.periodService.ListPeriods(c.Request.Context(), c.Param("group_id"), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListPeriodResponse(periods), params.Page, params.Limit, total)
}

// getPeriod godoc
// @Summary Get a period
// @Description Retrieves a period the caller may see.
// @Tags periods
// @Produce json
// @Param period_id path string true "Period ID"
// @Success 200 {object} DataResponse{data=dto.PeriodResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /periods/{period_id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("period_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToPeriodResponse(period))
}

// deletePeriod godoc
// @Summary Delete a period
// @Description Deletes a period. Blocked while journal entries fall inside its date range. Requires the ADMIN role.
// @Tags periods
// @Produce json
// @Param period_id path string true "Period ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /periods/{period_id} [delete]
func (h *periodHandler) deletePeriod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.periodService.DeletePeriod(c.Request.Context(), c.Param("period_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "period deleted")
}

// closePeriod godoc
// @Summary Close a period
// @Description Closes a period when no draft or pending entries remain in its date range. Requires the ADMIN role.
// @Tags periods
// @Produce json
// @Param period_id path string true "Period ID"
// @Success 200 {object} MessageResponse{data=dto.PeriodResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /periods/{period_id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), c.Param("period_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToPeriodResponse(period), "period closed")
}

// reopenPeriod godoc
// @Summary Reopen a period
// @Description Clears the closed state of a closed period. Requires the ADMIN role.
// @Tags periods
// @Produce json
// @Param period_id path string true "Period ID"
// @Success 200 {object} MessageResponse{data=dto.PeriodResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /periods/{period_id}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), c.Param("period_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToPeriodResponse(period), "period reopened")
}
