package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// partyHandler handles customer and supplier requests. The party type is
// fixed per handler instance so the same code serves both route families.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
	partyType    domain.PartyType
}

func newPartyHandler(partyService portssvc.PartySvcFacade, partyType domain.PartyType) *partyHandler {
	return &partyHandler{partyService: partyService, partyType: partyType}
}

func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	for partyType, segment := range map[domain.PartyType]string{
		domain.PartyCustomer: "customers",
		domain.PartySupplier: "suppliers",
	} {
		h := newPartyHandler(partyService, partyType)

		rg.POST("/groups/:group_id/"+segment, h.createParty)
		rg.GET("/groups/:group_id/"+segment, h.listParties)

		parties := rg.Group("/" + segment)
		{
			parties.GET("/:party_id", h.getParty)
			parties.PUT("/:party_id", h.updateParty)
			parties.DELETE("/:party_id", h.deactivateParty)
		}
	}
}

func (h *partyHandler) label() string {
	return strings.ToLower(string(h.partyType))
}

// createParty godoc
// @Summary Create a customer or supplier
// @Description Creates a party under a group. The party type comes from the route.
// @Tags parties
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} MessageResponse{data=dto.PartyResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/customers [post]
func (h *partyHandler) createParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), c.Param("group_id"), h.partyType, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToPartyResponse(party), h.label()+" created")
}

// listParties godoc
// @Summary List a group's customers or suppliers
// @Description Retrieves a page of a group's parties of the route's type.
// @Tags parties
// @Produce json
// @Param group_id path string true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Filter by name"
// @Success 200 {object} ListResponse{data=[]dto.PartyResponse}
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/customers [get]
func (h *partyHandler) listParties(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	parties, total, err := h.partyService.ListParties(c.Request.Context(), c.Param("group_id"), h.partyType, params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListPartyResponse(parties), params.Page, params.Limit, total)
}

// getParty godoc
// @Summary Get a customer or supplier
// @Description Retrieves a party of the route's type.
// @Tags parties
// @Produce json
// @Param party_id path string true "Party ID"
// @Success 200 {object} DataResponse{data=dto.PartyResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{party_id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	party, err := h.partyService.GetPartyByID(c.Request.Context(), h.partyType, c.Param("party_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToPartyResponse(party))
}

// updateParty godoc
// @Summary Update a customer or supplier
// @Description Applies a partial update to a party of the route's type.
// @Tags parties
// @Accept json
// @Produce json
// @Param party_id path string true "Party ID"
// @Param party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} MessageResponse{data=dto.PartyResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{party_id} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), h.partyType, c.Param("party_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToPartyResponse(party), h.label()+" updated")
}

// deactivateParty godoc
// @Summary Deactivate a customer or supplier
// @Description Soft-deletes a party of the route's type. Requires the ADMIN role.
// @Tags parties
// @Produce json
// @Param party_id path string true "Party ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{party_id} [delete]
func (h *partyHandler) deactivateParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.partyService.DeactivateParty(c.Request.Context(), h.partyType, c.Param("party_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, h.label()+" deactivated")
}
