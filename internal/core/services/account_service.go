package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/google/uuid"
)

// AccountService handles business logic for the accounts of a chart,
// including the hierarchy rules.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	chartRepo   portsrepo.ChartRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(ar portsrepo.AccountRepositoryFacade, chr portsrepo.ChartRepositoryFacade, jr portsrepo.JournalRepositoryFacade, authorizer portssvc.GroupAuthorizerSvc) portssvc.AccountSvcFacade {
	return &AccountService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		accountRepo: ar,
		chartRepo:   chr,
		journalRepo: jr,
	}
}

// Ensure AccountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// findChartForUser resolves the chart and checks the caller's membership in
// the owning group.
func (s *AccountService) findChartForUser(ctx context.Context, chartID, userID string, requiredRole domain.UserGroupRole) (*domain.ChartOfAccounts, error) {
	chart, err := s.chartRepo.FindChartByID(ctx, chartID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, chart.GroupID, requiredRole); err != nil {
		return nil, err
	}
	return chart, nil
}

// CreateAccount creates an account after validating code uniqueness, the
// parent linkage, the level rule, the auxiliary rule and the nature rule.
func (s *AccountService) CreateAccount(ctx context.Context, chartID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.findChartForUser(ctx, chartID, userID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	count, err := s.accountRepo.CountByCode(ctx, chartID, req.Code, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleDuplicateCode,
			"an account with code "+req.Code+" already exists in this chart")
	}

	if req.ParentAccountID == nil {
		if req.Level != 1 {
			return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidRootLevel,
				"accounts without a parent must be level 1").
				WithDetail("level", req.Level)
		}
	} else {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil || parent.ChartID != chartID {
			return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidParentAccount,
				"parent account not found in this chart")
		}
		if parent.Postable {
			return nil, apperrors.NewBusinessRuleError(apperrors.RulePostableWithSubaccounts,
				"parent account is postable and cannot have subaccounts")
		}
		if req.Level != parent.Level+1 {
			return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidLevel,
				fmt.Sprintf("level must be %d, one more than the parent's", parent.Level+1)).
				WithDetail("level", req.Level).
				WithDetail("parentLevel", parent.Level)
		}
	}

	if req.RequiresAuxiliary && req.AuxiliaryType == nil {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleAuxiliaryTypeRequired,
			"auxiliaryType is required when requiresAuxiliary is set")
	}
	if (req.AccountType == domain.Asset || req.AccountType == domain.Liability) && req.Nature == nil {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleNatureRequired,
			"nature is required for ASSET and LIABILITY accounts")
	}

	now := time.Now()
	account := domain.Account{
		AccountID:         uuid.NewString(),
		ChartID:           chartID,
		Code:              req.Code,
		Name:              req.Name,
		AccountType:       req.AccountType,
		Level:             req.Level,
		ParentAccountID:   req.ParentAccountID,
		Postable:          req.Postable,
		RequiresAuxiliary: req.RequiresAuxiliary,
		AuxiliaryType:     req.AuxiliaryType,
		CurrencyCode:      req.CurrencyCode,
		Nature:            req.Nature,
		IfrsCategory:      req.IfrsCategory,
		ValuationMethod:   req.ValuationMethod,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("chart_id", chartID), slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("chart_id", chartID),
		slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account scoped to a chart.
func (s *AccountService) GetAccountByID(ctx context.Context, chartID, accountID, userID string) (*domain.Account, error) {
	if _, err := s.findChartForUser(ctx, chartID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ChartID != chartID {
		return nil, apperrors.NewNotFoundError("account " + accountID + " not found in this chart")
	}
	return account, nil
}

// ListAccounts retrieves a page of a chart's accounts.
func (s *AccountService) ListAccounts(ctx context.Context, chartID string, params dto.ListAccountsParams, userID string) ([]domain.Account, int, error) {
	if _, err := s.findChartForUser(ctx, chartID, userID, domain.RoleMember); err != nil {
		return nil, 0, err
	}
	return s.accountRepo.ListAccounts(ctx, chartID, params.Postable, params.Limit, params.Offset())
}

// GetAccountTree assembles the chart's active accounts into their hierarchy.
// Accounts whose parent is missing from the set are treated as roots.
func (s *AccountService) GetAccountTree(ctx context.Context, chartID, userID string) ([]*domain.AccountNode, error) {
	if _, err := s.findChartForUser(ctx, chartID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAllAccounts(ctx, chartID)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &domain.AccountNode{Account: acc}
	}

	var roots []*domain.AccountNode
	for _, acc := range accounts {
		node := nodes[acc.AccountID]
		if acc.ParentAccountID != nil {
			if parent, ok := nodes[*acc.ParentAccountID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// UpdateAccount applies a partial update. Postability and auxiliary changes
// are validated against the account's final state.
func (s *AccountService) UpdateAccount(ctx context.Context, chartID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.findChartForUser(ctx, chartID, userID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ChartID != chartID {
		return nil, apperrors.NewNotFoundError("account " + accountID + " not found in this chart")
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Postable != nil {
		if *req.Postable && !account.Postable {
			subCount, err := s.accountRepo.CountSubaccounts(ctx, accountID)
			if err != nil {
				return nil, fmt.Errorf("failed to count subaccounts: %w", err)
			}
			if subCount > 0 {
				return nil, apperrors.NewBusinessRuleError(apperrors.RulePostableWithSubaccounts,
					"account has subaccounts and cannot be made postable").
					WithDetail("subaccountCount", subCount)
			}
		}
		account.Postable = *req.Postable
	}
	if req.RequiresAuxiliary != nil {
		account.RequiresAuxiliary = *req.RequiresAuxiliary
	}
	if req.AuxiliaryType != nil {
		account.AuxiliaryType = req.AuxiliaryType
	}
	if req.Nature != nil {
		account.Nature = req.Nature
	}
	if req.IfrsCategory != nil {
		account.IfrsCategory = *req.IfrsCategory
	}
	if req.ValuationMethod != nil {
		account.ValuationMethod = *req.ValuationMethod
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if account.RequiresAuxiliary && account.AuxiliaryType == nil {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleAuxiliaryTypeRequired,
			"auxiliaryType is required when requiresAuxiliary is set")
	}
	if (account.AccountType == domain.Asset || account.AccountType == domain.Liability) && account.Nature == nil {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleNatureRequired,
			"nature is required for ASSET and LIABILITY accounts")
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account. Blocked while it has active
// subaccounts or journal entry lines.
func (s *AccountService) DeactivateAccount(ctx context.Context, chartID, accountID, userID string) error {
	if _, err := s.findChartForUser(ctx, chartID, userID, domain.RoleAdmin); err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.ChartID != chartID {
		return apperrors.NewNotFoundError("account " + accountID + " not found in this chart")
	}

	subCount, err := s.accountRepo.CountSubaccounts(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count subaccounts: %w", err)
	}
	if subCount > 0 {
		return apperrors.NewBusinessRuleError(apperrors.RuleHasSubaccounts,
			"account has subaccounts and cannot be deleted").
			WithDetail("subaccountCount", subCount)
	}

	lineCount, err := s.journalRepo.CountLinesByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count account entry lines: %w", err)
	}
	if lineCount > 0 {
		return apperrors.NewBusinessRuleError(apperrors.RuleHasJournalEntries,
			"account has journal entry lines and cannot be deleted").
			WithDetail("lineCount", lineCount)
	}

	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now())
}
