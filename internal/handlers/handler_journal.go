package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// journalHandler handles journal entry requests.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	rg.POST("/companies/:company_id/journal-entries", h.createEntry)
	rg.GET("/companies/:company_id/journal-entries", h.listEntries)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/submit", h.submitEntry)
		entries.POST("/:entry_id/approve", h.approveEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a DRAFT journal entry with its lines after balance, period and account validation.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry with at least two lines"
// @Success 201 {object} MessageResponse{data=dto.JournalEntryResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), c.Param("company_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToJournalEntryResponse(entry), "journal entry created")
}

// listEntries godoc
// @Summary List a company's journal entries
// @Description Retrieves a page of a company's entries, newest first.
// @Tags journal-entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(DRAFT, PENDING_APPROVAL, CONFIRMED, REVERSED)
// @Success 200 {object} ListResponse{data=[]dto.JournalEntryResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	entries, total, err := h.journalService.ListEntries(c.Request.Context(), c.Param("company_id"), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListJournalEntryResponse(entries), params.Page, params.Limit, total)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines.
// @Tags journal-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} DataResponse{data=dto.JournalEntryResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// submitEntry godoc
// @Summary Submit a journal entry for approval
// @Description Moves a DRAFT entry to PENDING_APPROVAL.
// @Tags journal-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} MessageResponse{data=dto.JournalEntryResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/{entry_id}/submit [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.SubmitEntry(c.Request.Context(), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToJournalEntryResponse(entry), "journal entry submitted")
}

// approveEntry godoc
// @Summary Approve a journal entry
// @Description Moves an entry to CONFIRMED. Entries below the group's minimum approval amount may be approved straight from DRAFT. Requires the ADMIN role.
// @Tags journal-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} MessageResponse{data=dto.JournalEntryResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/{entry_id}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.ApproveEntry(c.Request.Context(), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToJournalEntryResponse(entry), "journal entry approved")
}
