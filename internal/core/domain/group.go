package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EconomicGroup is the tenant root: it owns companies, the chart of
// accounts, periods, auxiliary parties and exchange rates.
type EconomicGroup struct {
	GroupID      string `json:"groupID"`      // Primary key (UUID)
	Name         string `json:"name"`         // User-defined group name
	MainCountry  string `json:"mainCountry"`  // ISO country code (e.g. "UY")
	BaseCurrency string `json:"baseCurrency"` // ISO 4217 code; target of all exchange rates
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// UserGroupRole defines the possible roles a user can have within a group.
type UserGroupRole string

const (
	RoleAdmin  UserGroupRole = "ADMIN"
	RoleMember UserGroupRole = "MEMBER"
)

// UserGroup represents the membership of a User in an EconomicGroup.
// Membership is the authorization predicate for every group-scoped operation.
type UserGroup struct {
	UserID   string        `json:"userID"`
	UserName string        `json:"userName"`
	GroupID  string        `json:"groupID"`
	Role     UserGroupRole `json:"role"`
	JoinedAt time.Time     `json:"joinedAt"`
}

// AccountingConfiguration holds per-group accounting parameters. One row is
// provisioned with fixed defaults when the group is created.
type AccountingConfiguration struct {
	ConfigurationID        string          `json:"configurationID"`
	GroupID                string          `json:"groupID"`
	MinimumApprovalAmount  decimal.Decimal `json:"minimumApprovalAmount"`
	AmountDecimals         int             `json:"amountDecimals"`
	ExchangeRateDecimals   int             `json:"exchangeRateDecimals"`
	AllowUnbalancedEntries bool            `json:"allowUnbalancedEntries"`
	AuditFields
}

// DefaultAccountingConfiguration returns the configuration provisioned for a
// newly created group.
func DefaultAccountingConfiguration(groupID string) AccountingConfiguration {
	return AccountingConfiguration{
		GroupID:                groupID,
		MinimumApprovalAmount:  decimal.NewFromFloat(50000.00),
		AmountDecimals:         2,
		ExchangeRateDecimals:   4,
		AllowUnbalancedEntries: false,
	}
}
