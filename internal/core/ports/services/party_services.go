package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// PartySvcFacade manages customers and suppliers. The party type is fixed by
// the route, not by the payload.
type PartySvcFacade interface {
	// CreateParty creates a customer or supplier under a group.
	CreateParty(ctx context.Context, groupID string, partyType domain.PartyType, req dto.CreatePartyRequest, userID string) (*domain.Party, error)

	// GetPartyByID retrieves a party of the expected type.
	GetPartyByID(ctx context.Context, partyType domain.PartyType, partyID, userID string) (*domain.Party, error)

	// ListParties retrieves a page of a group's parties with the total count.
	ListParties(ctx context.Context, groupID string, partyType domain.PartyType, params dto.ListParams, userID string) ([]domain.Party, int, error)

	// UpdateParty applies a partial update to a party.
	UpdateParty(ctx context.Context, partyType domain.PartyType, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeactivateParty soft-deletes a party.
	DeactivateParty(ctx context.Context, partyType domain.PartyType, partyID, userID string) error
}
