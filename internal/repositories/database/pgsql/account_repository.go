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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

var FULL_ACCOUNT_SELECT_QUERY = `
SELECT
	a.account_id, a.chart_id, a.code, a.name, a.account_type, a.level,
	a.parent_account_id, a.postable, a.requires_auxiliary, a.auxiliary_type,
	a.currency_code, a.nature, a.ifrs_category, a.valuation_method, a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM accounts a
`

func (r *PgxAccountRepository) getAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.Account, error) {
	query := FULL_ACCOUNT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Account{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, chart_id, code, name, account_type, level,
			parent_account_id, postable, requires_auxiliary, auxiliary_type,
			currency_code, nature, ifrs_category, valuation_method, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.ChartID,
		account.Code,
		account.Name,
		account.AccountType,
		account.Level,
		account.ParentAccountID,
		account.Postable,
		account.RequiresAuxiliary,
		account.AuxiliaryType,
		account.CurrencyCode,
		account.Nature,
		account.IfrsCategory,
		account.ValuationMethod,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "uq_accounts_chart_code" {
				return apperrors.NewBusinessRuleError(apperrors.RuleDuplicateCode, "an account with code "+account.Code+" already exists in this chart")
			}
			return apperrors.NewConflictError("account " + account.AccountID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("chart or parent account not found")
		}
		return apperrors.NewAppError(500, "failed to save account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `WHERE a.account_id = $1`
	accounts, err := r.getAccounts(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `WHERE a.account_id = ANY($1)`
	accounts, err := r.getAccounts(ctx, query, accountIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, chartID string, postable *bool, limit, offset int) ([]domain.Account, int, error) {
	filter := `WHERE a.chart_id = $1`
	args := []any{chartID}
	if postable != nil {
		filter += ` AND a.postable = $2`
		args = append(args, *postable)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM accounts a ` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count accounts for chart "+chartID, err)
	}

	filter += ` ORDER BY a.code LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	accounts, err := r.getAccounts(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *PgxAccountRepository) ListAllAccounts(ctx context.Context, chartID string) ([]domain.Account, error) {
	query := `WHERE a.chart_id = $1 AND a.is_active = true ORDER BY a.code`
	return r.getAccounts(ctx, query, chartID)
}

func (r *PgxAccountRepository) CountByCode(ctx context.Context, chartID, code, excludeID string) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE chart_id = $1 AND code = $2`
	args := []any{chartID, code}
	if excludeID != "" {
		query += ` AND account_id != $3`
		args = append(args, excludeID)
	}
	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count accounts by code in chart "+chartID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) CountSubaccounts(ctx context.Context, accountID string) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE parent_account_id = $1 AND is_active = true;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count subaccounts of account "+accountID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) CountAccountsByChartID(ctx context.Context, chartID string) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE chart_id = $1 AND is_active = true;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, chartID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count accounts for chart "+chartID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, postable = $2, requires_auxiliary = $3, auxiliary_type = $4,
		    nature = $5, ifrs_category = $6, valuation_method = $7, is_active = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $11;
	`
	result, err := r.Pool.Exec(ctx, query,
		account.Name,
		account.Postable,
		account.RequiresAuxiliary,
		account.AuxiliaryType,
		account.Nature,
		account.IfrsCategory,
		account.ValuationMethod,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + account.AccountID + " not found")
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE account_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found")
	}
	return nil
}
