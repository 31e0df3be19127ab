package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// PartyRepositoryFacade defines persistence operations for customers and
// suppliers.
type PartyRepositoryFacade interface {
	// SaveParty persists a new customer or supplier.
	SaveParty(ctx context.Context, party domain.Party) error

	// FindPartyByID retrieves a party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a page of a group's parties of one type filtered
	// by an optional case-insensitive name search, with the total count.
	ListParties(ctx context.Context, groupID string, partyType domain.PartyType, search string, limit, offset int) ([]domain.Party, int, error)

	// UpdateParty updates a party's mutable fields.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty marks a party as inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error

	// CountByName counts same-type parties of the group whose name matches
	// case-insensitively, excluding excludeID when non-empty.
	CountByName(ctx context.Context, groupID string, partyType domain.PartyType, name, excludeID string) (int, error)
}
