package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalService handles business logic for journal entries: line
// validation, balance enforcement, the closed-period guard and the
// submit/approve lifecycle.
type JournalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	chartRepo   portsrepo.ChartRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	groupRepo   portsrepo.GroupRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	jr portsrepo.JournalRepositoryFacade,
	cr portsrepo.CompanyRepositoryFacade,
	chr portsrepo.ChartRepositoryFacade,
	ar portsrepo.AccountRepositoryFacade,
	pr portsrepo.PeriodRepositoryFacade,
	gr portsrepo.GroupRepositoryFacade,
	authorizer portssvc.GroupAuthorizerSvc,
) portssvc.JournalSvcFacade {
	return &JournalService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		journalRepo: jr,
		companyRepo: cr,
		chartRepo:   chr,
		accountRepo: ar,
		periodRepo:  pr,
		groupRepo:   gr,
	}
}

// Ensure JournalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

// CreateEntry validates and persists a journal entry with its lines. The
// entry starts in DRAFT.
func (s *JournalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i, line := range req.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("line %d: amounts cannot be negative", i))
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("line %d: exactly one of debit or credit must be positive", i))
		}
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
	}

	config, err := s.groupRepo.FindConfigurationByGroupID(ctx, company.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounting configuration: %w", err)
	}
	if !config.AllowUnbalancedEntries && !totalDebits.Equal(totalCredits) {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleUnbalancedEntry,
			"total debits must equal total credits").
			WithDetail("totalDebits", totalDebits.String()).
			WithDetail("totalCredits", totalCredits.String())
	}

	closed, err := s.periodRepo.CountClosedPeriodsContaining(ctx, company.GroupID, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check closed periods: %w", err)
	}
	if closed > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RulePeriodClosed,
			"entry date falls inside a closed accounting period")
	}

	chart, err := s.chartRepo.FindChartByGroupID(ctx, company.GroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("group has no chart of accounts")
		}
		return nil, err
	}

	accountIDs := make([]string, len(req.Lines))
	for i, line := range req.Lines {
		accountIDs[i] = line.AccountID
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load line accounts: %w", err)
	}
	for _, line := range req.Lines {
		account, ok := accounts[line.AccountID]
		if !ok || account.ChartID != chart.ChartID {
			return nil, apperrors.NewNotFoundError("account " + line.AccountID + " not found in the group's chart")
		}
		if !account.IsActive || !account.Postable {
			return nil, apperrors.NewBusinessRuleError(apperrors.RuleNotPostable,
				"account "+account.Code+" is not postable").
				WithDetail("accountID", account.AccountID)
		}
		if account.RequiresAuxiliary {
			if line.AuxiliaryType == nil || line.AuxiliaryID == nil {
				return nil, apperrors.NewBusinessRuleError(apperrors.RuleAuxiliaryTypeRequired,
					"account "+account.Code+" requires an auxiliary reference on its lines").
					WithDetail("accountID", account.AccountID)
			}
			if account.AuxiliaryType != nil && *line.AuxiliaryType != *account.AuxiliaryType {
				return nil, apperrors.NewBusinessRuleError(apperrors.RuleAuxiliaryTypeRequired,
					"account "+account.Code+" requires auxiliary type "+string(*account.AuxiliaryType)).
					WithDetail("accountID", account.AccountID)
			}
		}
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Status:      domain.StatusDraft,
		AuditFields: audit,
	}
	entry.Lines = make([]domain.EntryLine, len(req.Lines))
	for i, line := range req.Lines {
		entry.Lines[i] = domain.EntryLine{
			LineID:        uuid.NewString(),
			EntryID:       entry.EntryID,
			AccountID:     line.AccountID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			CurrencyCode:  line.CurrencyCode,
			AuxiliaryType: line.AuxiliaryType,
			AuxiliaryID:   line.AuxiliaryID,
			ExchangeRate:  line.ExchangeRate,
			AuditFields:   audit,
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("company_id", companyID),
		slog.String("amount", entry.Amount().String()))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *JournalService) GetEntryByID(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, entry.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a page of a company's entries, newest first.
func (s *JournalService) ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams, userID string) ([]domain.JournalEntry, int, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleMember); err != nil {
		return nil, 0, err
	}
	return s.journalRepo.ListEntriesByCompany(ctx, companyID, params.Status, params.Limit, params.Offset())
}

// SubmitEntry moves a DRAFT entry to PENDING_APPROVAL.
func (s *JournalService) SubmitEntry(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, entry.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidStatusTransition,
			"only DRAFT entries can be submitted").
			WithDetail("status", string(entry.Status))
	}

	now := time.Now()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.StatusPendingApproval, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to submit journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Status = domain.StatusPendingApproval
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// ApproveEntry moves an entry to CONFIRMED. ADMIN only. Entries at or over
// the group's minimum approval amount must come through PENDING_APPROVAL;
// smaller DRAFT entries confirm directly.
func (s *JournalService) ApproveEntry(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, entry.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, company.GroupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.StatusPendingApproval:
	case domain.StatusDraft:
		config, err := s.groupRepo.FindConfigurationByGroupID(ctx, company.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load accounting configuration: %w", err)
		}
		if entry.Amount().GreaterThanOrEqual(config.MinimumApprovalAmount) {
			return nil, apperrors.NewBusinessRuleError(apperrors.RuleApprovalRequired,
				"entry amount requires submission for approval first").
				WithDetail("amount", entry.Amount().String()).
				WithDetail("minimumApprovalAmount", config.MinimumApprovalAmount.String())
		}
	default:
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidStatusTransition,
			"only DRAFT or PENDING_APPROVAL entries can be approved").
			WithDetail("status", string(entry.Status))
	}

	now := time.Now()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.StatusConfirmed, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Status = domain.StatusConfirmed
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry approved",
		slog.String("entry_id", entryID),
		slog.String("approved_by", userID))
	return entry, nil
}
