package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxChartRepository struct {
	BaseRepository
}

// newPgxChartRepository creates a new repository for chart of accounts data.
func newPgxChartRepository(pool *pgxpool.Pool) portsrepo.ChartRepositoryFacade {
	return &PgxChartRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChartRepository implements portsrepo.ChartRepositoryFacade
var _ portsrepo.ChartRepositoryFacade = (*PgxChartRepository)(nil)

var FULL_CHART_SELECT_QUERY = `
SELECT
	ch.chart_id, ch.group_id, ch.name, ch.is_active,
	ch.created_at, ch.created_by, ch.last_updated_at, ch.last_updated_by
FROM charts_of_accounts ch
`

func (r *PgxChartRepository) getCharts(ctx context.Context, filterQuery string, args ...any) ([]domain.ChartOfAccounts, error) {
	query := FULL_CHART_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query charts of accounts", err)
	}
	defer rows.Close()
	charts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ChartOfAccounts])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.ChartOfAccounts{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect chart rows", err)
	}
	return charts, nil
}

func (r *PgxChartRepository) SaveChart(ctx context.Context, chart domain.ChartOfAccounts) error {
	query := `
		INSERT INTO charts_of_accounts (
			chart_id, group_id, name, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		chart.ChartID,
		chart.GroupID,
		chart.Name,
		chart.IsActive,
		chart.CreatedAt,
		chart.CreatedBy,
		chart.LastUpdatedAt,
		chart.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "uq_charts_group" {
				return apperrors.NewConflictError("group " + chart.GroupID + " already has a chart of accounts")
			}
			return apperrors.NewConflictError("chart " + chart.ChartID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("economic group " + chart.GroupID + " not found")
		}
		return apperrors.NewAppError(500, "failed to save chart "+chart.ChartID, err)
	}
	return nil
}

func (r *PgxChartRepository) FindChartByID(ctx context.Context, chartID string) (*domain.ChartOfAccounts, error) {
	query := `WHERE ch.chart_id = $1`
	charts, err := r.getCharts(ctx, query, chartID)
	if err != nil {
		return nil, err
	}
	if len(charts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &charts[0], nil
}

func (r *PgxChartRepository) FindChartByGroupID(ctx context.Context, groupID string) (*domain.ChartOfAccounts, error) {
	query := `WHERE ch.group_id = $1 AND ch.is_active = true`
	charts, err := r.getCharts(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	if len(charts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &charts[0], nil
}

func (r *PgxChartRepository) CountChartsByGroupID(ctx context.Context, groupID string) (int, error) {
	query := `SELECT COUNT(*) FROM charts_of_accounts WHERE group_id = $1 AND is_active = true;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, groupID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count charts for group "+groupID, err)
	}
	return count, nil
}

func (r *PgxChartRepository) DeactivateChart(ctx context.Context, chartID string, userID string, now time.Time) error {
	query := `
		UPDATE charts_of_accounts
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE chart_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, chartID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate chart "+chartID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("chart " + chartID + " not found")
	}
	return nil
}
