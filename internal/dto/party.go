package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// CreatePartyRequest defines data for creating a customer or supplier.
type CreatePartyRequest struct {
	Name    string `json:"name" binding:"required,min=3"`
	Rut     string `json:"rut"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdatePartyRequest defines the partial update surface of a party.
type UpdatePartyRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=3"`
	Rut      *string `json:"rut"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// PartyResponse defines data returned for a customer or supplier.
type PartyResponse struct {
	PartyID       string           `json:"partyID"`
	GroupID       string           `json:"groupID"`
	PartyType     domain.PartyType `json:"partyType"`
	Name          string           `json:"name"`
	Rut           string           `json:"rut,omitempty"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	Address       string           `json:"address,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToPartyResponse converts domain.Party to DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		GroupID:       p.GroupID,
		PartyType:     p.PartyType,
		Name:          p.Name,
		Rut:           p.Rut,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListPartyResponse converts a slice of domain.Party to DTOs.
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i, p := range parties {
		res[i] = ToPartyResponse(&p)
	}
	return res
}
