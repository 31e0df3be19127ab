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

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

var FULL_EXCHANGE_RATE_SELECT_QUERY = `
SELECT
	er.rate_id, er.group_id, er.rate_date, er.source_currency, er.target_currency, er.rate,
	er.created_at, er.created_by, er.last_updated_at, er.last_updated_by
FROM exchange_rates er
`

func (r *PgxExchangeRateRepository) getExchangeRates(ctx context.Context, filterQuery string, args ...any) ([]domain.ExchangeRate, error) {
	query := FULL_EXCHANGE_RATE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exchange rates", err)
	}
	defer rows.Close()
	rates, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ExchangeRate])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.ExchangeRate{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect exchange rate rows", err)
	}
	return rates, nil
}

func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			rate_id, group_id, rate_date, source_currency, target_currency, rate,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.RateID,
		rate.GroupID,
		rate.RateDate,
		rate.SourceCurrency,
		rate.TargetCurrency,
		rate.Rate,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "uq_rates_group_date_pair" {
				return apperrors.NewBusinessRuleError(apperrors.RuleDuplicateRate, "a rate for this date and currency pair already exists in the group")
			}
			return apperrors.NewConflictError("exchange rate " + rate.RateID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("group " + rate.GroupID + " not found")
		}
		return apperrors.NewAppError(500, "failed to save exchange rate "+rate.RateID, err)
	}
	return nil
}

func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `WHERE er.rate_id = $1`
	rates, err := r.getExchangeRates(ctx, query, rateID)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rates[0], nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, groupID, sourceCurrency string, limit, offset int) ([]domain.ExchangeRate, int, error) {
	filter := `WHERE er.group_id = $1`
	args := []any{groupID}
	if sourceCurrency != "" {
		filter += ` AND er.source_currency = $2`
		args = append(args, sourceCurrency)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM exchange_rates er ` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count exchange rates for group "+groupID, err)
	}

	filter += ` ORDER BY er.rate_date DESC, er.source_currency LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	rates, err := r.getExchangeRates(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	query := `DELETE FROM exchange_rates WHERE rate_id = $1;`
	result, err := r.Pool.Exec(ctx, query, rateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete exchange rate "+rateID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
	}
	return nil
}

func (r *PgxExchangeRateRepository) CountByKey(ctx context.Context, groupID string, date time.Time, source, target string) (int, error) {
	query := `
		SELECT COUNT(*) FROM exchange_rates
		WHERE group_id = $1 AND rate_date = $2 AND source_currency = $3 AND target_currency = $4;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, groupID, date, source, target).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count exchange rates by key for group "+groupID, err)
	}
	return count, nil
}
