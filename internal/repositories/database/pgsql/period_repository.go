package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

var FULL_PERIOD_SELECT_QUERY = `
SELECT
	p.period_id, p.group_id, p.period_type, p.fiscal_year, p.month,
	p.start_date, p.end_date, p.closed, p.closed_at, p.closed_by,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM accounting_periods p
`

func (r *PgxPeriodRepository) getPeriods(ctx context.Context, filterQuery string, args ...any) ([]domain.AccountingPeriod, error) {
	query := FULL_PERIOD_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting periods", err)
	}
	defer rows.Close()
	periods, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.AccountingPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AccountingPeriod{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect accounting period rows", err)
	}
	return periods, nil
}

func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	query := `
		INSERT INTO accounting_periods (
			period_id, group_id, period_type, fiscal_year, month,
			start_date, end_date, closed, closed_at, closed_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID,
		period.GroupID,
		period.PeriodType,
		period.FiscalYear,
		period.Month,
		period.StartDate,
		period.EndDate,
		period.Closed,
		period.ClosedAt,
		period.ClosedBy,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "uq_periods_group_combination" {
				return apperrors.NewBusinessRuleError(apperrors.RuleDuplicatePeriod, "a period for this year and month already exists in the group")
			}
			return apperrors.NewConflictError("period " + period.PeriodID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("group " + period.GroupID + " not found")
		}
		return apperrors.NewAppError(500, "failed to save accounting period "+period.PeriodID, err)
	}
	return nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `WHERE p.period_id = $1`
	periods, err := r.getPeriods(ctx, query, periodID)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &periods[0], nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, groupID string, periodType *domain.PeriodType, limit, offset int) ([]domain.AccountingPeriod, int, error) {
	filter := `WHERE p.group_id = $1`
	args := []any{groupID}
	if periodType != nil {
		filter += ` AND p.period_type = $2`
		args = append(args, *periodType)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM accounting_periods p ` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count accounting periods for group "+groupID, err)
	}

	filter += ` ORDER BY p.start_date DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	periods, err := r.getPeriods(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	return periods, total, nil
}

func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	query := `DELETE FROM accounting_periods WHERE period_id = $1;`
	result, err := r.Pool.Exec(ctx, query, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete accounting period "+periodID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accounting period " + periodID + " not found")
	}
	return nil
}

func (r *PgxPeriodRepository) CountByCombination(ctx context.Context, groupID string, periodType domain.PeriodType, fiscalYear int, month *int, excludeID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM accounting_periods
		WHERE group_id = $1 AND period_type = $2 AND fiscal_year = $3 AND month IS NOT DISTINCT FROM $4
	`
	args := []any{groupID, periodType, fiscalYear, month}
	if excludeID != "" {
		query += ` AND period_id != $5`
		args = append(args, excludeID)
	}
	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count periods by combination for group "+groupID, err)
	}
	return count, nil
}

func (r *PgxPeriodRepository) CountOverlapping(ctx context.Context, groupID string, periodType domain.PeriodType, start, end time.Time, excludeID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM accounting_periods
		WHERE group_id = $1 AND period_type = $2 AND start_date <= $3 AND end_date >= $4
	`
	args := []any{groupID, periodType, end, start}
	if excludeID != "" {
		query += ` AND period_id != $5`
		args = append(args, excludeID)
	}
	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count overlapping periods for group "+groupID, err)
	}
	return count, nil
}

func (r *PgxPeriodRepository) CountClosedPeriodsContaining(ctx context.Context, groupID string, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM accounting_periods
		WHERE group_id = $1 AND closed = true AND start_date <= $2 AND end_date >= $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, groupID, date).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count closed periods for group "+groupID, err)
	}
	return count, nil
}

func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE accounting_periods
		SET closed = true, closed_at = $1, closed_by = $2, last_updated_at = $1, last_updated_by = $2
		WHERE period_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, closedAt, closedBy, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close accounting period "+periodID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accounting period " + periodID + " not found")
	}
	return nil
}

func (r *PgxPeriodRepository) ReopenPeriod(ctx context.Context, periodID, userID string, now time.Time) error {
	query := `
		UPDATE accounting_periods
		SET closed = false, closed_at = NULL, closed_by = NULL, last_updated_at = $1, last_updated_by = $2
		WHERE period_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reopen accounting period "+periodID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accounting period " + periodID + " not found")
	}
	return nil
}
