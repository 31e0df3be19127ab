package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// CompanyRepositoryFacade defines persistence operations for companies and
// per-company user grants.
type CompanyRepositoryFacade interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves a page of a group's companies filtered by an
	// optional case-insensitive name search, with the total count.
	ListCompanies(ctx context.Context, groupID, search string, limit, offset int) ([]domain.Company, int, error)

	// UpdateCompany updates a company's mutable fields.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// DeactivateCompany marks a company as inactive.
	DeactivateCompany(ctx context.Context, companyID string, userID string, now time.Time) error

	// CountByRut counts companies in the group holding the given tax id,
	// excluding excludeID when non-empty.
	CountByRut(ctx context.Context, groupID, rut, excludeID string) (int, error)

	// GrantUserCompany inserts or updates a user's company permission.
	GrantUserCompany(ctx context.Context, grant domain.UserCompany) error

	// RevokeUserCompany hard-deletes a user's company permission.
	RevokeUserCompany(ctx context.Context, userID, companyID string) error

	// ListUsersByCompanyID retrieves all user grants of a company.
	ListUsersByCompanyID(ctx context.Context, companyID string) ([]domain.UserCompany, error)
}
