package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// CreateCompanyRequest defines data for creating a company under a group.
type CreateCompanyRequest struct {
	Name               string    `json:"name" binding:"required,min=3"`
	Rut                string    `json:"rut" binding:"required"`
	Country            string    `json:"country" binding:"required,countrycode"`
	FunctionalCurrency string    `json:"functionalCurrency" binding:"required,iso4217"`
	StartDate          time.Time `json:"startDate" binding:"required"`
}

// UpdateCompanyRequest defines the partial update surface of a company.
type UpdateCompanyRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=3"`
	StartDate *time.Time `json:"startDate"`
	IsActive  *bool      `json:"isActive"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID          string    `json:"companyID"`
	GroupID            string    `json:"groupID"`
	Name               string    `json:"name"`
	Rut                string    `json:"rut"`
	Country            string    `json:"country"`
	FunctionalCurrency string    `json:"functionalCurrency"`
	StartDate          time.Time `json:"startDate"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy      string    `json:"lastUpdatedBy"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:          c.CompanyID,
		GroupID:            c.GroupID,
		Name:               c.Name,
		Rut:                c.Rut,
		Country:            c.Country,
		FunctionalCurrency: c.FunctionalCurrency,
		StartDate:          c.StartDate,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
		LastUpdatedAt:      c.LastUpdatedAt,
		LastUpdatedBy:      c.LastUpdatedBy,
	}
}

// ToListCompanyResponse converts a slice of domain.Company to DTOs.
func ToListCompanyResponse(companies []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		res[i] = ToCompanyResponse(&c)
	}
	return res
}

// GrantUserCompanyRequest defines data for granting a user access to a company.
type GrantUserCompanyRequest struct {
	UserID   string `json:"userID" binding:"required"`
	CanWrite bool   `json:"canWrite"`
}

// UserCompanyResponse defines data returned about a user's company grant.
type UserCompanyResponse struct {
	UserID    string    `json:"userID"`
	UserName  string    `json:"userName,omitempty"`
	CompanyID string    `json:"companyID"`
	CanWrite  bool      `json:"canWrite"`
	GrantedAt time.Time `json:"grantedAt"`
}

// ToUserCompanyResponse converts domain.UserCompany to DTO.
func ToUserCompanyResponse(uc *domain.UserCompany) UserCompanyResponse {
	return UserCompanyResponse{
		UserID:    uc.UserID,
		UserName:  uc.UserName,
		CompanyID: uc.CompanyID,
		CanWrite:  uc.CanWrite,
		GrantedAt: uc.GrantedAt,
	}
}

// ToListUserCompanyResponse converts a slice of domain.UserCompany to DTOs.
func ToListUserCompanyResponse(ucs []domain.UserCompany) []UserCompanyResponse {
	res := make([]UserCompanyResponse, len(ucs))
	for i, uc := range ucs {
		res[i] = ToUserCompanyResponse(&uc)
	}
	return res
}
