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

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for economic group data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

var FULL_GROUP_SELECT_QUERY = `
SELECT
	g.group_id, g.name, g.main_country, g.base_currency, g.is_active,
	g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
FROM economic_groups g
`

func (r *PgxGroupRepository) getGroups(ctx context.Context, filterQuery string, args ...any) ([]domain.EconomicGroup, error) {
	query := FULL_GROUP_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query economic groups", err)
	}
	defer rows.Close()
	groups, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.EconomicGroup])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.EconomicGroup{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect economic group rows", err)
	}
	return groups, nil
}

// ProvisionGroup inserts the group, the creator's ADMIN membership, the
// default accounting configuration and an empty chart of accounts in one
// transaction. Failure midway leaves no partial group visible.
func (r *PgxGroupRepository) ProvisionGroup(ctx context.Context, group domain.EconomicGroup, membership domain.UserGroup, config domain.AccountingConfiguration, chart domain.ChartOfAccounts) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	groupQuery := `
		INSERT INTO economic_groups (
			group_id, name, main_country, base_currency, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, groupQuery,
		group.GroupID,
		group.Name,
		group.MainCountry,
		group.BaseCurrency,
		group.IsActive,
		group.CreatedAt,
		group.CreatedBy,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return apperrors.NewConflictError("economic group " + group.GroupID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert economic group "+group.GroupID, err)
	}

	membershipQuery := `
		INSERT INTO user_groups (user_id, group_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		membership.UserID,
		membership.GroupID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert creator membership for group "+group.GroupID, err)
	}

	configQuery := `
		INSERT INTO accounting_configurations (
			configuration_id, group_id, minimum_approval_amount, amount_decimals,
			exchange_rate_decimals, allow_unbalanced_entries,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, configQuery,
		config.ConfigurationID,
		config.GroupID,
		config.MinimumApprovalAmount,
		config.AmountDecimals,
		config.ExchangeRateDecimals,
		config.AllowUnbalancedEntries,
		config.CreatedAt,
		config.CreatedBy,
		config.LastUpdatedAt,
		config.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert accounting configuration for group "+group.GroupID, err)
	}

	chartQuery := `
		INSERT INTO charts_of_accounts (
			chart_id, group_id, name, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, chartQuery,
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
		if _, ok := uniqueViolation(err); ok {
			return apperrors.NewConflictError("group " + group.GroupID + " already has a chart of accounts")
		}
		return apperrors.NewAppError(500, "failed to insert chart of accounts for group "+group.GroupID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.EconomicGroup, error) {
	query := `WHERE g.group_id = $1`
	groups, err := r.getGroups(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &groups[0], nil
}

func (r *PgxGroupRepository) ListGroupsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.EconomicGroup, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM economic_groups g
		JOIN user_groups ug ON g.group_id = ug.group_id
		WHERE ug.user_id = $1 AND g.is_active = true;
	`
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count groups for user "+userID, err)
	}

	filter := `
		JOIN user_groups ug ON g.group_id = ug.group_id
		WHERE ug.user_id = $1 AND g.is_active = true
		ORDER BY g.name
		LIMIT $2 OFFSET $3
	`
	groups, err := r.getGroups(ctx, filter, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

func (r *PgxGroupRepository) UpdateGroup(ctx context.Context, group domain.EconomicGroup) error {
	query := `
		UPDATE economic_groups
		SET name = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE group_id = $5;
	`
	result, err := r.Pool.Exec(ctx, query,
		group.Name,
		group.IsActive,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
		group.GroupID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update economic group "+group.GroupID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("economic group " + group.GroupID + " not found")
	}
	return nil
}

func (r *PgxGroupRepository) DeactivateGroup(ctx context.Context, groupID string, userID string, now time.Time) error {
	query := `
		UPDATE economic_groups
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE group_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, groupID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate economic group "+groupID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("economic group " + groupID + " not found")
	}
	return nil
}

func (r *PgxGroupRepository) AddUserToGroup(ctx context.Context, membership domain.UserGroup) error {
	query := `
		INSERT INTO user_groups (user_id, group_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, group_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add the user or update their role if they already belong
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.GroupID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("user or group not found")
		}
		return apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to group "+membership.GroupID, err)
	}
	return nil
}

func (r *PgxGroupRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	query := `DELETE FROM user_groups WHERE user_id = $1 AND group_id = $2;`
	result, err := r.Pool.Exec(ctx, query, userID, groupID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove user "+userID+" from group "+groupID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}

func (r *PgxGroupRepository) FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.UserGroup, error) {
	query := `
		SELECT user_id, group_id, role, joined_at
		FROM user_groups
		WHERE user_id = $1 AND group_id = $2;
	`
	var ug domain.UserGroup
	err := r.Pool.QueryRow(ctx, query, userID, groupID).Scan(
		&ug.UserID,
		&ug.GroupID,
		&ug.Role,
		&ug.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find role of user "+userID+" in group "+groupID, err)
	}
	return &ug, nil
}

func (r *PgxGroupRepository) ListUsersByGroupID(ctx context.Context, groupID string) ([]domain.UserGroup, error) {
	query := `
		SELECT ug.user_id, u.name AS user_name, ug.group_id, ug.role, ug.joined_at
		FROM user_groups ug
		JOIN users u ON ug.user_id = u.user_id
		WHERE ug.group_id = $1
		ORDER BY ug.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for group "+groupID, err)
	}
	defer rows.Close()

	var memberships []domain.UserGroup
	for rows.Next() {
		var ug domain.UserGroup
		if err := rows.Scan(&ug.UserID, &ug.UserName, &ug.GroupID, &ug.Role, &ug.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user group row", err)
		}
		memberships = append(memberships, ug)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user group rows", err)
	}
	return memberships, nil
}

func (r *PgxGroupRepository) FindConfigurationByGroupID(ctx context.Context, groupID string) (*domain.AccountingConfiguration, error) {
	query := `
		SELECT configuration_id, group_id, minimum_approval_amount, amount_decimals,
		       exchange_rate_decimals, allow_unbalanced_entries,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_configurations
		WHERE group_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting configuration for group "+groupID, err)
	}
	defer rows.Close()
	config, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.AccountingConfiguration])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("accounting configuration for group " + groupID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to collect accounting configuration row", err)
	}
	return &config, nil
}

func (r *PgxGroupRepository) UpdateConfiguration(ctx context.Context, config domain.AccountingConfiguration) error {
	query := `
		UPDATE accounting_configurations
		SET minimum_approval_amount = $1, amount_decimals = $2,
		    exchange_rate_decimals = $3, allow_unbalanced_entries = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE configuration_id = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		config.MinimumApprovalAmount,
		config.AmountDecimals,
		config.ExchangeRateDecimals,
		config.AllowUnbalancedEntries,
		config.LastUpdatedAt,
		config.LastUpdatedBy,
		config.ConfigurationID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update accounting configuration "+config.ConfigurationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accounting configuration " + config.ConfigurationID + " not found")
	}
	return nil
}
