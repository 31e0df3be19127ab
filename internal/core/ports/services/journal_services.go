package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// JournalSvcFacade manages journal entries posted against companies.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a journal entry with its lines.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of a company's entries with the total count.
	ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams, userID string) ([]domain.JournalEntry, int, error)

	// SubmitEntry moves a DRAFT entry to PENDING_APPROVAL.
	SubmitEntry(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error)

	// ApproveEntry moves an entry to CONFIRMED. Entries below the group's
	// minimum approval amount may be approved straight from DRAFT.
	ApproveEntry(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error)
}
