package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// companyHandler handles company and company grant requests.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	rg.POST("/groups/:group_id/companies", h.createCompany)
	rg.GET("/groups/:group_id/companies", h.listCompanies)

	companies := rg.Group("/companies")
	{
		companies.GET("/:company_id", h.getCompany)
		companies.PUT("/:company_id", h.updateCompany)
		companies.DELETE("/:company_id", h.deactivateCompany)

		companies.POST("/:company_id/users", h.grantUser)
		companies.GET("/:company_id/users", h.listUsers)
		companies.DELETE("/:company_id/users/:user_id", h.revokeUser)
	}
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a company under a group after tax ID and currency validation. Requires the ADMIN role.
// @Tags companies
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} MessageResponse{data=dto.CompanyResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToCompanyResponse(company), "company created")
}

// listCompanies godoc
// @Summary List a group's companies
// @Description Retrieves a page of a group's companies.
// @Tags companies
// @Produce json
// @Param group_id path string true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Filter by name"
// @Success 200 {object} ListResponse{data=[]dto.CompanyResponse}
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	companies, total, err := h.companyService.ListCompanies(c.Request.Context(), c.Param("group_id"), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListCompanyResponse(companies), params.Page, params.Limit, total)
}

// getCompany godoc
// @Summary Get a company
// @Description Retrieves a company the caller may see.
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} DataResponse{data=dto.CompanyResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("company_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Description Applies a partial update to a company. Requires the ADMIN role.
// @Tags companies
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} MessageResponse{data=dto.CompanyResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), c.Param("company_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToCompanyResponse(company), "company updated")
}

// deactivateCompany godoc
// @Summary Deactivate a company
// @Description Soft-deletes a company. Blocked while journal entries reference it. Requires the ADMIN role.
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id} [delete]
func (h *companyHandler) deactivateCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.companyService.DeactivateCompany(c.Request.Context(), c.Param("company_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "company deactivated")
}

// grantUser godoc
// @Summary Grant a user access to a company
// @Description Grants or updates a user's permission on a company. Requires the ADMIN role.
// @Tags companies
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param grant body dto.GrantUserCompanyRequest true "User and permission"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/users [post]
func (h *companyHandler) grantUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.GrantUserCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.companyService.GrantUserCompany(c.Request.Context(), c.Param("company_id"), req, userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, nil, "user granted access to company")
}

// listUsers godoc
// @Summary List a company's user grants
// @Description Lists the users granted access to a company.
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} DataResponse{data=[]dto.UserCompanyResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/users [get]
func (h *companyHandler) listUsers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	grants, err := h.companyService.ListCompanyUsers(c.Request.Context(), c.Param("company_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToListUserCompanyResponse(grants))
}

// revokeUser godoc
// @Summary Revoke a user's access to a company
// @Description Removes a user's grant on a company. Requires the ADMIN role.
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/users/{user_id} [delete]
func (h *companyHandler) revokeUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.companyService.RevokeUserCompany(c.Request.Context(), c.Param("company_id"), c.Param("user_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "user access revoked")
}
