package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/google/uuid"
)

// PartyService handles business logic for customers and suppliers. The
// party type comes from the route, so a supplier can never be fetched
// through the customer endpoints.
type PartyService struct {
	BaseService
	partyRepo portsrepo.PartyRepositoryFacade
}

// NewPartyService creates a new PartyService.
func NewPartyService(pr portsrepo.PartyRepositoryFacade, authorizer portssvc.GroupAuthorizerSvc) portssvc.PartySvcFacade {
	return &PartyService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		partyRepo:   pr,
	}
}

// Ensure PartyService implements the portssvc.PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*PartyService)(nil)

func partyLabel(partyType domain.PartyType) string {
	return strings.ToLower(string(partyType))
}

// CreateParty creates a customer or supplier. Names are unique per group
// and type, case-insensitively.
func (s *PartyService) CreateParty(ctx context.Context, groupID string, partyType domain.PartyType, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	count, err := s.partyRepo.CountByName(ctx, groupID, partyType, req.Name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleDuplicateName,
			"a "+partyLabel(partyType)+" named "+req.Name+" already exists in this group")
	}

	now := time.Now()
	party := domain.Party{
		PartyID:   uuid.NewString(),
		GroupID:   groupID,
		PartyType: partyType,
		Name:      req.Name,
		Rut:       req.Rut,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party",
			slog.String("group_id", groupID),
			slog.String("party_type", string(partyType)))
		return nil, err
	}
	return &party, nil
}

// GetPartyByID retrieves a party of the expected type.
func (s *PartyService) GetPartyByID(ctx context.Context, partyType domain.PartyType, partyID, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.PartyType != partyType {
		return nil, apperrors.NewNotFoundError(partyLabel(partyType) + " " + partyID + " not found")
	}
	if err := s.AuthorizeUser(ctx, userID, party.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return party, nil
}

// ListParties retrieves a page of a group's parties of one type.
func (s *PartyService) ListParties(ctx context.Context, groupID string, partyType domain.PartyType, params dto.ListParams, userID string) ([]domain.Party, int, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, 0, err
	}
	return s.partyRepo.ListParties(ctx, groupID, partyType, params.Search, params.Limit, params.Offset())
}

// UpdateParty applies a partial update. Name changes re-run the uniqueness
// check.
func (s *PartyService) UpdateParty(ctx context.Context, partyType domain.PartyType, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.PartyType != partyType {
		return nil, apperrors.NewNotFoundError(partyLabel(partyType) + " " + partyID + " not found")
	}
	if err := s.AuthorizeUser(ctx, userID, party.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, party.Name) {
		count, err := s.partyRepo.CountByName(ctx, party.GroupID, partyType, *req.Name, partyID)
		if err != nil {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		if count > 0 {
			return nil, apperrors.NewBusinessRuleError(apperrors.RuleDuplicateName,
				"a "+partyLabel(partyType)+" named "+*req.Name+" already exists in this group")
		}
		party.Name = *req.Name
	} else if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Rut != nil {
		party.Rut = *req.Rut
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}
	party.LastUpdatedAt = time.Now()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		return nil, err
	}
	return party, nil
}

// DeactivateParty soft-deletes a party of the expected type.
func (s *PartyService) DeactivateParty(ctx context.Context, partyType domain.PartyType, partyID, userID string) error {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return err
	}
	if party.PartyType != partyType {
		return apperrors.NewNotFoundError(partyLabel(partyType) + " " + partyID + " not found")
	}
	if err := s.AuthorizeUser(ctx, userID, party.GroupID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.partyRepo.DeactivateParty(ctx, partyID, userID, time.Now())
}
