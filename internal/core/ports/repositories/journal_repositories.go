package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for journal entries
// and their lines.
type JournalRepositoryFacade interface {
	// SaveEntry persists a journal entry together with its lines within a
	// single database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByCompany retrieves a page of a company's entries, newest
	// first, with the total count. status, when non-nil, filters entries.
	ListEntriesByCompany(ctx context.Context, companyID string, status *domain.EntryStatus, limit, offset int) ([]domain.JournalEntry, int, error)

	// UpdateEntryStatus moves an entry to a new lifecycle status.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string, now time.Time) error

	// CountUnpostedInRange counts DRAFT and PENDING_APPROVAL entries of the
	// group's companies dated within [start, end].
	CountUnpostedInRange(ctx context.Context, groupID string, start, end time.Time) (int, error)

	// CountEntriesInRange counts all entries of the group's companies dated
	// within [start, end].
	CountEntriesInRange(ctx context.Context, groupID string, start, end time.Time) (int, error)

	// CountEntriesByCompany counts entries posted against a company.
	CountEntriesByCompany(ctx context.Context, companyID string) (int, error)

	// CountLinesByAccount counts entry lines referencing an account.
	CountLinesByAccount(ctx context.Context, accountID string) (int, error)
}
