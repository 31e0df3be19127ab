package pgsql

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

var FULL_ENTRY_SELECT_QUERY = `
SELECT
	je.entry_id, je.company_id, je.entry_date, je.description, je.status,
	je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
FROM journal_entries je
`

func (r *PgxJournalRepository) getEntries(ctx context.Context, filterQuery string, args ...any) ([]domain.JournalEntry, error) {
	query := FULL_ENTRY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.CompanyID,
			&entry.EntryDate,
			&entry.Description,
			&entry.Status,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read journal entry rows", err)
	}
	return entries, nil
}

func (r *PgxJournalRepository) getLinesForEntries(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	query := `
		SELECT
			el.line_id, el.entry_id, el.account_id, el.debit, el.credit,
			el.currency_code, el.auxiliary_type, el.auxiliary_id, el.exchange_rate,
			el.created_at, el.created_by, el.last_updated_at, el.last_updated_by
		FROM entry_lines el
		WHERE el.entry_id = ANY($1)
		ORDER BY el.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines", err)
	}
	defer rows.Close()

	lines := make(map[string][]domain.EntryLine)
	for rows.Next() {
		var line domain.EntryLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.CurrencyCode,
			&line.AuxiliaryType,
			&line.AuxiliaryID,
			&line.ExchangeRate,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		lines[line.EntryID] = append(lines[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read entry line rows", err)
	}
	return lines, nil
}

func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for journal entry "+entry.EntryID, err)
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, company_id, entry_date, description, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.CompanyID,
		entry.EntryDate,
		entry.Description,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return apperrors.NewConflictError("journal entry " + entry.EntryID + " already exists")
		}
		if _, ok := foreignKeyViolation(err); ok {
			return apperrors.NewNotFoundError("company " + entry.CompanyID + " not found")
		}
		return apperrors.NewAppError(500, "failed to save journal entry "+entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (
			line_id, entry_id, account_id, debit, credit,
			currency_code, auxiliary_type, auxiliary_id, exchange_rate,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range entry.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.CurrencyCode,
			line.AuxiliaryType,
			line.AuxiliaryID,
			line.ExchangeRate,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
		if err != nil {
			if _, ok := foreignKeyViolation(err); ok {
				return apperrors.NewNotFoundError("account " + line.AccountID + " not found")
			}
			return apperrors.NewAppError(500, "failed to save entry line "+line.LineID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit journal entry "+entry.EntryID, err)
	}
	return nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `WHERE je.entry_id = $1`
	entries, err := r.getEntries(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	entry := entries[0]
	lines, err := r.getLinesForEntries(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return &entry, nil
}

func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, status *domain.EntryStatus, limit, offset int) ([]domain.JournalEntry, int, error) {
	filter := `WHERE je.company_id = $1`
	args := []any{companyID}
	if status != nil {
		filter += ` AND je.status = $2`
		args = append(args, *status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM journal_entries je ` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count journal entries for company "+companyID, err)
	}

	if status != nil {
		filter += ` ORDER BY je.entry_date DESC, je.entry_id LIMIT $3 OFFSET $4`
	} else {
		filter += ` ORDER BY je.entry_date DESC, je.entry_id LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)
	entries, err := r.getEntries(ctx, filter, args...)
	if err != nil {
		return nil, 0, err
	}
	if len(entries) == 0 {
		return []domain.JournalEntry{}, total, nil
	}

	entryIDs := make([]string, len(entries))
	for i, entry := range entries {
		entryIDs[i] = entry.EntryID
	}
	lines, err := r.getLinesForEntries(ctx, entryIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, total, nil
}

func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4;
	`
	result, err := r.Pool.Exec(ctx, query, status, now, userID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of journal entry "+entryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID + " not found")
	}
	return nil
}

func (r *PgxJournalRepository) CountUnpostedInRange(ctx context.Context, groupID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries je
		JOIN companies c ON c.company_id = je.company_id
		WHERE c.group_id = $1
		  AND je.entry_date >= $2 AND je.entry_date <= $3
		  AND je.status IN ('DRAFT', 'PENDING_APPROVAL');
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, groupID, start, end).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unposted entries for group "+groupID, err)
	}
	return count, nil
}

func (r *PgxJournalRepository) CountEntriesInRange(ctx context.Context, groupID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries je
		JOIN companies c ON c.company_id = je.company_id
		WHERE c.group_id = $1
		  AND je.entry_date >= $2 AND je.entry_date <= $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, groupID, start, end).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries in range for group "+groupID, err)
	}
	return count, nil
}

func (r *PgxJournalRepository) CountEntriesByCompany(ctx context.Context, companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE company_id = $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for company "+companyID, err)
	}
	return count, nil
}

func (r *PgxJournalRepository) CountLinesByAccount(ctx context.Context, accountID string) (int, error) {
	query := `SELECT COUNT(*) FROM entry_lines WHERE account_id = $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entry lines for account "+accountID, err)
	}
	return count, nil
}
