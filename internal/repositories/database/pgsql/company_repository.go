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

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

var FULL_COMPANY_SELECT_QUERY = `
SELECT
	c.company_id, c.group_id, c.name, c.rut, c.country, c.functional_currency,
	c.start_date, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	query := FULL_COMPANY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()
	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Company{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (
			company_id, group_id, name, rut, country, functional_currency,
			start_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.GroupID,
		company.Name,
		company.Rut,
		company.Country,
		company.FunctionalCurrency,
		company.StartDate,
		company.IsActive,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "uq_companies_group_rut" {
				return apperrors.NewBusinessRuleError(apperrors.RuleDuplicateRut, "a company with rut "+company.Rut+" already exists in this group")
			}
			return apperrors.NewConflictError("company " + company.CompanyID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("economic group " + company.GroupID + " not found")
		}
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `WHERE c.company_id = $1`
	companies, err := r.getCompanies(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &companies[0], nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, groupID, search string, limit, offset int) ([]domain.Company, int, error) {
	filter := `WHERE c.group_id = $1`
	args := []any{groupID}
	if search != "" {
		filter += ` AND c.name ILIKE $2`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM companies c ` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count companies for group "+groupID, err)
	}

	filter += ` ORDER BY c.name LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	companies, err := r.getCompanies(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET name = $1, start_date = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		company.Name,
		company.StartDate,
		company.IsActive,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
		company.CompanyID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+company.CompanyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + company.CompanyID + " not found")
	}
	return nil
}

func (r *PgxCompanyRepository) DeactivateCompany(ctx context.Context, companyID string, userID string, now time.Time) error {
	query := `
		UPDATE companies
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE company_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate company "+companyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return nil
}

func (r *PgxCompanyRepository) CountByRut(ctx context.Context, groupID, rut, excludeID string) (int, error) {
	query := `SELECT COUNT(*) FROM companies WHERE group_id = $1 AND rut = $2`
	args := []any{groupID, rut}
	if excludeID != "" {
		query += ` AND company_id != $3`
		args = append(args, excludeID)
	}
	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count companies by rut in group "+groupID, err)
	}
	return count, nil
}

func (r *PgxCompanyRepository) GrantUserCompany(ctx context.Context, grant domain.UserCompany) error {
	query := `
		INSERT INTO user_companies (user_id, company_id, can_write, granted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, company_id) DO UPDATE SET can_write = EXCLUDED.can_write;
	`
	_, err := r.Pool.Exec(ctx, query,
		grant.UserID,
		grant.CompanyID,
		grant.CanWrite,
		grant.GrantedAt,
	)
	if err != nil {
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("user or company not found")
		}
		return apperrors.NewAppError(500, "failed to grant user "+grant.UserID+" access to company "+grant.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) RevokeUserCompany(ctx context.Context, userID, companyID string) error {
	query := `DELETE FROM user_companies WHERE user_id = $1 AND company_id = $2;`
	result, err := r.Pool.Exec(ctx, query, userID, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to revoke user "+userID+" access to company "+companyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company grant not found")
	}
	return nil
}

func (r *PgxCompanyRepository) ListUsersByCompanyID(ctx context.Context, companyID string) ([]domain.UserCompany, error) {
	query := `
		SELECT uc.user_id, u.name AS user_name, uc.company_id, uc.can_write, uc.granted_at
		FROM user_companies uc
		JOIN users u ON uc.user_id = u.user_id
		WHERE uc.company_id = $1
		ORDER BY uc.granted_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for company "+companyID, err)
	}
	defer rows.Close()

	var grants []domain.UserCompany
	for rows.Next() {
		var uc domain.UserCompany
		if err := rows.Scan(&uc.UserID, &uc.UserName, &uc.CompanyID, &uc.CanWrite, &uc.GrantedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user company row", err)
		}
		grants = append(grants, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user company rows", err)
	}
	return grants, nil
}
