package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// CreateChartRequest defines data for creating a chart of accounts.
type CreateChartRequest struct {
	GroupID string `json:"groupID" binding:"required"`
	Name    string `json:"name" binding:"required,min=3"`
}

// ChartResponse defines data returned for a chart of accounts.
type ChartResponse struct {
	ChartID       string    `json:"chartID"`
	GroupID       string    `json:"groupID"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToChartResponse converts domain.ChartOfAccounts to DTO.
func ToChartResponse(ch *domain.ChartOfAccounts) ChartResponse {
	return ChartResponse{
		ChartID:       ch.ChartID,
		GroupID:       ch.GroupID,
		Name:          ch.Name,
		IsActive:      ch.IsActive,
		CreatedAt:     ch.CreatedAt,
		CreatedBy:     ch.CreatedBy,
		LastUpdatedAt: ch.LastUpdatedAt,
		LastUpdatedBy: ch.LastUpdatedBy,
	}
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code              string                `json:"code" binding:"required,accountcode"`
	Name              string                `json:"name" binding:"required"`
	AccountType       domain.AccountType    `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Level             int                   `json:"level" binding:"required,min=1"`
	ParentAccountID   *string               `json:"parentAccountID"`
	Postable          bool                  `json:"postable"`
	RequiresAuxiliary bool                  `json:"requiresAuxiliary"`
	AuxiliaryType     *domain.AuxiliaryType `json:"auxiliaryType" binding:"omitempty,oneof=CUSTOMER SUPPLIER EMPLOYEE OTHER"`
	CurrencyCode      string                `json:"currencyCode" binding:"required,iso4217"`
	Nature            *domain.AccountNature `json:"nature" binding:"omitempty,oneof=CURRENT NON_CURRENT"`
	IfrsCategory      string                `json:"ifrsCategory"`
	ValuationMethod   string                `json:"valuationMethod"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name              *string               `json:"name" binding:"omitempty,min=1"`
	Postable          *bool                 `json:"postable"`
	RequiresAuxiliary *bool                 `json:"requiresAuxiliary"`
	AuxiliaryType     *domain.AuxiliaryType `json:"auxiliaryType" binding:"omitempty,oneof=CUSTOMER SUPPLIER EMPLOYEE OTHER"`
	Nature            *domain.AccountNature `json:"nature" binding:"omitempty,oneof=CURRENT NON_CURRENT"`
	IfrsCategory      *string               `json:"ifrsCategory"`
	ValuationMethod   *string               `json:"valuationMethod"`
	IsActive          *bool                 `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID         string                `json:"accountID"`
	ChartID           string                `json:"chartID"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	AccountType       domain.AccountType    `json:"accountType"`
	Level             int                   `json:"level"`
	ParentAccountID   *string               `json:"parentAccountID,omitempty"`
	Postable          bool                  `json:"postable"`
	RequiresAuxiliary bool                  `json:"requiresAuxiliary"`
	AuxiliaryType     *domain.AuxiliaryType `json:"auxiliaryType,omitempty"`
	CurrencyCode      string                `json:"currencyCode"`
	Nature            *domain.AccountNature `json:"nature,omitempty"`
	IfrsCategory      string                `json:"ifrsCategory,omitempty"`
	ValuationMethod   string                `json:"valuationMethod,omitempty"`
	IsActive          bool                  `json:"isActive"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy     string                `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		ChartID:           acc.ChartID,
		Code:              acc.Code,
		Name:              acc.Name,
		AccountType:       acc.AccountType,
		Level:             acc.Level,
		ParentAccountID:   acc.ParentAccountID,
		Postable:          acc.Postable,
		RequiresAuxiliary: acc.RequiresAuxiliary,
		AuxiliaryType:     acc.AuxiliaryType,
		CurrencyCode:      acc.CurrencyCode,
		Nature:            acc.Nature,
		IfrsCategory:      acc.IfrsCategory,
		ValuationMethod:   acc.ValuationMethod,
		IsActive:          acc.IsActive,
		CreatedAt:         acc.CreatedAt,
		CreatedBy:         acc.CreatedBy,
		LastUpdatedAt:     acc.LastUpdatedAt,
		LastUpdatedBy:     acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountNodeResponse is an account plus its children, for the tree endpoint.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// ToAccountTreeResponse converts resolved account nodes to DTOs.
func ToAccountTreeResponse(nodes []*domain.AccountNode) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		res[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&n.Account),
			Children:        ToAccountTreeResponse(n.Children),
		}
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	ListParams
	Postable *bool `form:"postable"`
}
