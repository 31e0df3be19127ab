package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGroupRequest defines data for creating a new economic group.
type CreateGroupRequest struct {
	Name         string `json:"name" binding:"required,min=3"`
	MainCountry  string `json:"mainCountry" binding:"required,countrycode"`
	BaseCurrency string `json:"baseCurrency" binding:"required,iso4217"`
}

// UpdateGroupRequest defines the partial update surface of a group.
// Pointers distinguish omitted fields from zero values.
type UpdateGroupRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=3"`
	IsActive *bool   `json:"isActive"`
}

// GroupResponse defines data returned for an economic group.
type GroupResponse struct {
	GroupID       string    `json:"groupID"`
	Name          string    `json:"name"`
	MainCountry   string    `json:"mainCountry"`
	BaseCurrency  string    `json:"baseCurrency"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToGroupResponse converts domain.EconomicGroup to DTO.
func ToGroupResponse(g *domain.EconomicGroup) GroupResponse {
	return GroupResponse{
		GroupID:       g.GroupID,
		Name:          g.Name,
		MainCountry:   g.MainCountry,
		BaseCurrency:  g.BaseCurrency,
		IsActive:      g.IsActive,
		CreatedAt:     g.CreatedAt,
		CreatedBy:     g.CreatedBy,
		LastUpdatedAt: g.LastUpdatedAt,
		LastUpdatedBy: g.LastUpdatedBy,
	}
}

// ToListGroupResponse converts a slice of domain.EconomicGroup to DTOs.
func ToListGroupResponse(groups []domain.EconomicGroup) []GroupResponse {
	res := make([]GroupResponse, len(groups))
	for i, g := range groups {
		res[i] = ToGroupResponse(&g)
	}
	return res
}

// AddUserToGroupRequest defines data for adding a user to a group.
type AddUserToGroupRequest struct {
	UserID string               `json:"userID" binding:"required"`
	Role   domain.UserGroupRole `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

// UserGroupResponse defines data returned about a user's membership.
type UserGroupResponse struct {
	UserID   string               `json:"userID"`
	UserName string               `json:"userName,omitempty"`
	GroupID  string               `json:"groupID"`
	Role     domain.UserGroupRole `json:"role"`
	JoinedAt time.Time            `json:"joinedAt"`
}

// ToUserGroupResponse converts domain.UserGroup to DTO.
func ToUserGroupResponse(ug *domain.UserGroup) UserGroupResponse {
	return UserGroupResponse{
		UserID:   ug.UserID,
		UserName: ug.UserName,
		GroupID:  ug.GroupID,
		Role:     ug.Role,
		JoinedAt: ug.JoinedAt,
	}
}

// ToListUserGroupResponse converts a slice of domain.UserGroup to DTOs.
func ToListUserGroupResponse(ugs []domain.UserGroup) []UserGroupResponse {
	res := make([]UserGroupResponse, len(ugs))
	for i, ug := range ugs {
		res[i] = ToUserGroupResponse(&ug)
	}
	return res
}

// UpdateConfigurationRequest defines the partial update surface of a group's
// accounting configuration.
type UpdateConfigurationRequest struct {
	MinimumApprovalAmount  *decimal.Decimal `json:"minimumApprovalAmount"`
	AmountDecimals         *int             `json:"amountDecimals" binding:"omitempty,min=0,max=6"`
	ExchangeRateDecimals   *int             `json:"exchangeRateDecimals" binding:"omitempty,min=0,max=8"`
	AllowUnbalancedEntries *bool            `json:"allowUnbalancedEntries"`
}

// ConfigurationResponse defines data returned for an accounting configuration.
type ConfigurationResponse struct {
	ConfigurationID        string          `json:"configurationID"`
	GroupID                string          `json:"groupID"`
	MinimumApprovalAmount  decimal.Decimal `json:"minimumApprovalAmount"`
	AmountDecimals         int             `json:"amountDecimals"`
	ExchangeRateDecimals   int             `json:"exchangeRateDecimals"`
	AllowUnbalancedEntries bool            `json:"allowUnbalancedEntries"`
	LastUpdatedAt          time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy          string          `json:"lastUpdatedBy"`
}

// ToConfigurationResponse converts domain.AccountingConfiguration to DTO.
func ToConfigurationResponse(c *domain.AccountingConfiguration) ConfigurationResponse {
	return ConfigurationResponse{
		ConfigurationID:        c.ConfigurationID,
		GroupID:                c.GroupID,
		MinimumApprovalAmount:  c.MinimumApprovalAmount,
		AmountDecimals:         c.AmountDecimals,
		ExchangeRateDecimals:   c.ExchangeRateDecimals,
		AllowUnbalancedEntries: c.AllowUnbalancedEntries,
		LastUpdatedAt:          c.LastUpdatedAt,
		LastUpdatedBy:          c.LastUpdatedBy,
	}
}
