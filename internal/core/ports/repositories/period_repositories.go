package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// PeriodRepositoryFacade defines persistence operations for accounting
// periods. Periods are hard-deleted.
type PeriodRepositoryFacade interface {
	// SavePeriod persists a new accounting period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// FindPeriodByID retrieves a period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves a page of a group's periods with the total count.
	// periodType, when non-nil, filters on the period type.
	ListPeriods(ctx context.Context, groupID string, periodType *domain.PeriodType, limit, offset int) ([]domain.AccountingPeriod, int, error)

	// DeletePeriod removes a period row.
	DeletePeriod(ctx context.Context, periodID string) error

	// CountByCombination counts periods matching (group, type, fiscalYear,
	// month), excluding excludeID when non-empty.
	CountByCombination(ctx context.Context, groupID string, periodType domain.PeriodType, fiscalYear int, month *int, excludeID string) (int, error)

	// CountOverlapping counts same-type periods of the group whose date
	// range intersects [start, end], excluding excludeID when non-empty.
	CountOverlapping(ctx context.Context, groupID string, periodType domain.PeriodType, start, end time.Time, excludeID string) (int, error)

	// CountClosedPeriodsContaining counts closed periods of the group whose
	// date range contains the given date.
	CountClosedPeriodsContaining(ctx context.Context, groupID string, date time.Time) (int, error)

	// ClosePeriod atomically sets closed, closedAt and closedBy.
	ClosePeriod(ctx context.Context, periodID, closedBy string, closedAt time.Time) error

	// ReopenPeriod clears closed, closedAt and closedBy.
	ReopenPeriod(ctx context.Context, periodID, userID string, now time.Time) error
}
