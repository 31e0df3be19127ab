package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// CompanySvcFacade is the company service surface, including per-company
// user grants.
type CompanySvcFacade interface {
	// CreateCompany creates a company under a group.
	CreateCompany(ctx context.Context, groupID string, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)

	// GetCompanyByID retrieves a company the user may see.
	GetCompanyByID(ctx context.Context, companyID, userID string) (*domain.Company, error)

	// ListCompanies retrieves a page of a group's companies with the total count.
	ListCompanies(ctx context.Context, groupID string, params dto.ListParams, userID string) ([]domain.Company, int, error)

	// UpdateCompany applies a partial update to a company.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error)

	// DeactivateCompany soft-deletes a company. Blocked while journal
	// entries reference it.
	DeactivateCompany(ctx context.Context, companyID, userID string) error

	// GrantUserCompany grants or updates a user's permission on a company.
	GrantUserCompany(ctx context.Context, companyID string, req dto.GrantUserCompanyRequest, userID string) error

	// RevokeUserCompany removes a user's permission on a company.
	RevokeUserCompany(ctx context.Context, companyID, targetUserID, userID string) error

	// ListCompanyUsers lists the company's user grants.
	ListCompanyUsers(ctx context.Context, companyID, userID string) ([]domain.UserCompany, error)
}
