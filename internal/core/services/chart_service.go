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

// ChartService handles business logic for charts of accounts. Each group
// owns at most one chart.
type ChartService struct {
	BaseService
	chartRepo   portsrepo.ChartRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartService creates a new ChartService.
func NewChartService(chr portsrepo.ChartRepositoryFacade, ar portsrepo.AccountRepositoryFacade, authorizer portssvc.GroupAuthorizerSvc) portssvc.ChartSvcFacade {
	return &ChartService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		chartRepo:   chr,
		accountRepo: ar,
	}
}

// Ensure ChartService implements the portssvc.ChartSvcFacade interface
var _ portssvc.ChartSvcFacade = (*ChartService)(nil)

// CreateChart creates a chart of accounts for a group. Groups created
// through provisioning already carry one, so this returns a conflict for
// them unless the chart was deleted first.
func (s *ChartService) CreateChart(ctx context.Context, req dto.CreateChartRequest, userID string) (*domain.ChartOfAccounts, error) {
	if err := s.AuthorizeUser(ctx, userID, req.GroupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	count, err := s.chartRepo.CountChartsByGroupID(ctx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing charts: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewConflictError("group " + req.GroupID + " already has a chart of accounts")
	}

	now := time.Now()
	chart := domain.ChartOfAccounts{
		ChartID:  uuid.NewString(),
		GroupID:  req.GroupID,
		Name:     req.Name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.chartRepo.SaveChart(ctx, chart); err != nil {
		s.LogError(ctx, err, "Failed to save chart of accounts", slog.String("group_id", req.GroupID))
		return nil, err
	}
	return &chart, nil
}

// GetChartByID retrieves a chart the caller's group membership covers.
func (s *ChartService) GetChartByID(ctx context.Context, chartID, userID string) (*domain.ChartOfAccounts, error) {
	chart, err := s.chartRepo.FindChartByID(ctx, chartID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, chart.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return chart, nil
}

// GetChartByGroupID retrieves the group's chart.
func (s *ChartService) GetChartByGroupID(ctx context.Context, groupID, userID string) (*domain.ChartOfAccounts, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.chartRepo.FindChartByGroupID(ctx, groupID)
}

// DeactivateChart soft-deletes a chart. Blocked while it still has accounts.
func (s *ChartService) DeactivateChart(ctx context.Context, chartID, userID string) error {
	chart, err := s.chartRepo.FindChartByID(ctx, chartID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, chart.GroupID, domain.RoleAdmin); err != nil {
		return err
	}

	accountCount, err := s.accountRepo.CountAccountsByChartID(ctx, chartID)
	if err != nil {
		return fmt.Errorf("failed to count chart accounts: %w", err)
	}
	if accountCount > 0 {
		return apperrors.NewBusinessRuleError(apperrors.RuleChartHasAccounts,
			"chart of accounts still has accounts and cannot be deleted").
			WithDetail("accountCount", accountCount)
	}

	return s.chartRepo.DeactivateChart(ctx, chartID, userID, time.Now())
}
