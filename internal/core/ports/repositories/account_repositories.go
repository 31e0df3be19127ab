package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// ChartRepositoryFacade defines persistence operations for charts of accounts.
type ChartRepositoryFacade interface {
	// SaveChart persists a new chart of accounts.
	SaveChart(ctx context.Context, chart domain.ChartOfAccounts) error

	// FindChartByID retrieves a chart by its unique identifier.
	FindChartByID(ctx context.Context, chartID string) (*domain.ChartOfAccounts, error)

	// FindChartByGroupID retrieves the single chart of a group.
	FindChartByGroupID(ctx context.Context, groupID string) (*domain.ChartOfAccounts, error)

	// CountChartsByGroupID counts charts owned by the group.
	CountChartsByGroupID(ctx context.Context, groupID string) (int, error)

	// DeactivateChart marks a chart as inactive.
	DeactivateChart(ctx context.Context, chartID string, userID string, now time.Time) error
}

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of a chart's accounts with the total
	// count. postable, when non-nil, filters on the postable flag.
	ListAccounts(ctx context.Context, chartID string, postable *bool, limit, offset int) ([]domain.Account, int, error)

	// ListAllAccounts retrieves every active account of a chart, ordered by
	// code, for tree assembly.
	ListAllAccounts(ctx context.Context, chartID string) ([]domain.Account, error)

	// CountByCode counts accounts in the chart holding the given code,
	// excluding excludeID when non-empty.
	CountByCode(ctx context.Context, chartID, code, excludeID string) (int, error)

	// CountSubaccounts counts direct children of an account.
	CountSubaccounts(ctx context.Context, accountID string) (int, error)

	// CountAccountsByChartID counts accounts belonging to a chart.
	CountAccountsByChartID(ctx context.Context, chartID string) (int, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
