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

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customer and supplier data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

var FULL_PARTY_SELECT_QUERY = `
SELECT
	pt.party_id, pt.group_id, pt.party_type, pt.name, pt.rut,
	pt.email, pt.phone, pt.address, pt.is_active,
	pt.created_at, pt.created_by, pt.last_updated_at, pt.last_updated_by
FROM parties pt
`

func (r *PgxPartyRepository) getParties(ctx context.Context, filterQuery string, args ...any) ([]domain.Party, error) {
	query := FULL_PARTY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query parties", err)
	}
	defer rows.Close()
	parties, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Party])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Party{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect party rows", err)
	}
	return parties, nil
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (
			party_id, group_id, party_type, name, rut,
			email, phone, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		party.PartyID,
		party.GroupID,
		party.PartyType,
		party.Name,
		party.Rut,
		party.Email,
		party.Phone,
		party.Address,
		party.IsActive,
		party.CreatedAt,
		party.CreatedBy,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "uq_parties_group_type_name" {
				return apperrors.NewBusinessRuleError(apperrors.RuleDuplicateName, "a "+string(party.PartyType)+" named "+party.Name+" already exists in the group")
			}
			return apperrors.NewConflictError("party " + party.PartyID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("group " + party.GroupID + " not found")
		}
		return apperrors.NewAppError(500, "failed to save party "+party.PartyID, err)
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `WHERE pt.party_id = $1`
	parties, err := r.getParties(ctx, query, partyID)
	if err != nil {
		return nil, err
	}
	if len(parties) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &parties[0], nil
}

func (r *PgxPartyRepository) ListParties(ctx context.Context, groupID string, partyType domain.PartyType, search string, limit, offset int) ([]domain.Party, int, error) {
	filter := `WHERE pt.group_id = $1 AND pt.party_type = $2`
	args := []any{groupID, partyType}
	if search != "" {
		filter += ` AND pt.name ILIKE $3`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM parties pt ` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count parties for group "+groupID, err)
	}

	filter += ` ORDER BY pt.name LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	parties, err := r.getParties(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	return parties, total, nil
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	query := `
		UPDATE parties
		SET name = $1, rut = $2, email = $3, phone = $4, address = $5,
		    is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE party_id = $9;
	`
	result, err := r.Pool.Exec(ctx, query,
		party.Name,
		party.Rut,
		party.Email,
		party.Phone,
		party.Address,
		party.IsActive,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
		party.PartyID,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == "uq_parties_group_type_name" {
			return apperrors.NewBusinessRuleError(apperrors.RuleDuplicateName, "a "+string(party.PartyType)+" named "+party.Name+" already exists in the group")
		}
		return apperrors.NewAppError(500, "failed to update party "+party.PartyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("party " + party.PartyID + " not found")
	}
	return nil
}

func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	query := `
		UPDATE parties
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE party_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, partyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate party "+partyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("party " + partyID + " not found")
	}
	return nil
}

func (r *PgxPartyRepository) CountByName(ctx context.Context, groupID string, partyType domain.PartyType, name, excludeID string) (int, error) {
	query := `SELECT COUNT(*) FROM parties WHERE group_id = $1 AND party_type = $2 AND LOWER(name) = LOWER($3)`
	args := []any{groupID, partyType, name}
	if excludeID != "" {
		query += ` AND party_id != $4`
		args = append(args, excludeID)
	}
	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count parties by name for group "+groupID, err)
	}
	return count, nil
}
