package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// ChartSvcFacade manages charts of accounts. A group owns at most one chart.
type ChartSvcFacade interface {
	// CreateChart creates a chart for a group. Conflict when one exists.
	CreateChart(ctx context.Context, req dto.CreateChartRequest, userID string) (*domain.ChartOfAccounts, error)

	// GetChartByID retrieves a chart the user may see.
	GetChartByID(ctx context.Context, chartID, userID string) (*domain.ChartOfAccounts, error)

	// GetChartByGroupID retrieves the group's chart.
	GetChartByGroupID(ctx context.Context, groupID, userID string) (*domain.ChartOfAccounts, error)

	// DeactivateChart soft-deletes a chart. Blocked while it has accounts.
	DeactivateChart(ctx context.Context, chartID, userID string) error
}

// AccountSvcFacade manages the accounts of a chart.
type AccountSvcFacade interface {
	// CreateAccount creates an account in a chart after hierarchy and
	// uniqueness validation.
	CreateAccount(ctx context.Context, chartID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves an account scoped to a chart.
	GetAccountByID(ctx context.Context, chartID, accountID, userID string) (*domain.Account, error)

	// ListAccounts retrieves a page of a chart's accounts with the total count.
	ListAccounts(ctx context.Context, chartID string, params dto.ListAccountsParams, userID string) ([]domain.Account, int, error)

	// GetAccountTree returns the chart's accounts assembled into a hierarchy.
	GetAccountTree(ctx context.Context, chartID, userID string) ([]*domain.AccountNode, error)

	// UpdateAccount applies a partial update to an account.
	UpdateAccount(ctx context.Context, chartID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account. Blocked while it has
	// subaccounts or entry lines.
	DeactivateAccount(ctx context.Context, chartID, accountID, userID string) error
}
