package domain

import "time"

// Company belongs to exactly one EconomicGroup. Journal entries are posted
// against a company.
type Company struct {
	CompanyID          string    `json:"companyID"`
	GroupID            string    `json:"groupID"`
	Name               string    `json:"name"`
	Rut                string    `json:"rut"`     // Tax id, format validated per country
	Country            string    `json:"country"` // ISO country code
	FunctionalCurrency string    `json:"functionalCurrency"`
	StartDate          time.Time `json:"startDate"`
	IsActive           bool      `json:"isActive"`
	AuditFields
}

// UserCompany is a per-company permission grant. Unlike group memberships it
// is hard-deleted on revoke.
type UserCompany struct {
	UserID    string    `json:"userID"`
	UserName  string    `json:"userName"`
	CompanyID string    `json:"companyID"`
	CanWrite  bool      `json:"canWrite"`
	GrantedAt time.Time `json:"grantedAt"`
}
