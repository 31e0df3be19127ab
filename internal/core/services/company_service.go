package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/google/uuid"
)

// CompanyService handles business logic for companies and per-company user
// grants.
type CompanyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(cr portsrepo.CompanyRepositoryFacade, jr portsrepo.JournalRepositoryFacade, ur portsrepo.UserRepositoryFacade, authorizer portssvc.GroupAuthorizerSvc) portssvc.CompanySvcFacade {
	return &CompanyService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		companyRepo: cr,
		journalRepo: jr,
		userRepo:    ur,
	}
}

// Ensure CompanyService implements the portssvc.CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*CompanyService)(nil)

// CreateCompany creates a company under a group after validating the tax id
// format, the currency whitelist and rut uniqueness within the group.
func (s *CompanyService) CreateCompany(ctx context.Context, groupID string, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !domain.IsSupportedCountry(req.Country) {
		return nil, apperrors.NewValidationFailedError("country " + req.Country + " is not supported")
	}
	if !domain.IsValidRut(req.Country, req.Rut) {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidRut,
			fmt.Sprintf("rut %s does not match the format required for country %s", req.Rut, req.Country))
	}
	if !domain.IsCurrencyAllowed(req.Country, req.FunctionalCurrency) {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidCurrencyForCountry,
			fmt.Sprintf("currency %s is not allowed for country %s (allowed: %s)",
				req.FunctionalCurrency, req.Country, strings.Join(domain.AllowedCurrencies(req.Country), ", ")))
	}

	count, err := s.companyRepo.CountByRut(ctx, groupID, req.Rut, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check rut uniqueness: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleDuplicateRut,
			"a company with rut "+req.Rut+" already exists in this group")
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:          uuid.NewString(),
		GroupID:            groupID,
		Name:               req.Name,
		Rut:                req.Rut,
		Country:            req.Country,
		FunctionalCurrency: req.FunctionalCurrency,
		StartDate:          req.StartDate,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("group_id", groupID))
		return nil, err
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("group_id", groupID))
	return &company, nil
}

// GetCompanyByID retrieves a company the caller's group membership covers.
func (s *CompanyService) GetCompanyByID(ctx context.Context, companyID, userID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies retrieves a page of a group's companies.
func (s *CompanyService) ListCompanies(ctx context.Context, groupID string, params dto.ListParams, userID string) ([]domain.Company, int, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, 0, err
	}
	return s.companyRepo.ListCompanies(ctx, groupID, params.Search, params.Limit, params.Offset())
}

// UpdateCompany applies a partial update to a company. ADMIN only.
func (s *CompanyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.StartDate != nil {
		company.StartDate = *req.StartDate
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, err
	}
	return company, nil
}

// DeactivateCompany soft-deletes a company. Blocked while journal entries
// reference it.
func (s *CompanyService) DeactivateCompany(ctx context.Context, companyID, userID string) error {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleAdmin); err != nil {
		return err
	}

	entryCount, err := s.journalRepo.CountEntriesByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to count company journal entries: %w", err)
	}
	if entryCount > 0 {
		return apperrors.NewBusinessRuleError(apperrors.RuleHasJournalEntries,
			"company has journal entries and cannot be deleted").
			WithDetail("entryCount", entryCount)
	}

	return s.companyRepo.DeactivateCompany(ctx, companyID, userID, time.Now())
}

// GrantUserCompany grants or updates a user's permission on a company.
// ADMIN only. Granting again overwrites canWrite.
func (s *CompanyService) GrantUserCompany(ctx context.Context, companyID string, req dto.GrantUserCompanyRequest, userID string) error {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user " + req.UserID + " not found")
		}
		return fmt.Errorf("failed to validate target user: %w", err)
	}

	grant := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		CanWrite:  req.CanWrite,
		GrantedAt: time.Now(),
	}
	if err := s.companyRepo.GrantUserCompany(ctx, grant); err != nil {
		s.LogError(ctx, err, "Failed to grant company access",
			slog.String("company_id", companyID),
			slog.String("target_user_id", req.UserID))
		return err
	}
	return nil
}

// RevokeUserCompany hard-deletes a user's permission on a company. ADMIN only.
func (s *CompanyService) RevokeUserCompany(ctx context.Context, companyID, targetUserID, userID string) error {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.companyRepo.RevokeUserCompany(ctx, targetUserID, companyID)
}

// ListCompanyUsers lists the company's user grants.
func (s *CompanyService) ListCompanyUsers(ctx context.Context, companyID, userID string) ([]domain.UserCompany, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.companyRepo.ListUsersByCompanyID(ctx, companyID)
}
