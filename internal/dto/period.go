package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// CreatePeriodRequest defines data for creating an accounting period.
// MONTH periods require month; FISCAL_YEAR periods must not set it.
type CreatePeriodRequest struct {
	PeriodType domain.PeriodType `json:"periodType" binding:"required,oneof=FISCAL_YEAR MONTH"`
	FiscalYear int               `json:"fiscalYear" binding:"required,min=1900,max=2200"`
	Month      *int              `json:"month" binding:"omitempty,min=1,max=12"`
	StartDate  time.Time         `json:"startDate" binding:"required"`
	EndDate    time.Time         `json:"endDate" binding:"required"`
}

// ListPeriodsParams defines query parameters for listing periods.
type ListPeriodsParams struct {
	ListParams
	PeriodType *domain.PeriodType `form:"type" binding:"omitempty,oneof=FISCAL_YEAR MONTH"`
}

// PeriodResponse defines data returned for an accounting period.
type PeriodResponse struct {
	PeriodID      string            `json:"periodID"`
	GroupID       string            `json:"groupID"`
	PeriodType    domain.PeriodType `json:"periodType"`
	FiscalYear    int               `json:"fiscalYear"`
	Month         *int              `json:"month,omitempty"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	Closed        bool              `json:"closed"`
	ClosedAt      *time.Time        `json:"closedAt,omitempty"`
	ClosedBy      *string           `json:"closedBy,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedBy     string            `json:"createdBy"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy string            `json:"lastUpdatedBy"`
}

// ToPeriodResponse converts domain.AccountingPeriod to DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:      p.PeriodID,
		GroupID:       p.GroupID,
		PeriodType:    p.PeriodType,
		FiscalYear:    p.FiscalYear,
		Month:         p.Month,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Closed:        p.Closed,
		ClosedAt:      p.ClosedAt,
		ClosedBy:      p.ClosedBy,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListPeriodResponse converts a slice of domain.AccountingPeriod to DTOs.
func ToListPeriodResponse(periods []domain.AccountingPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodResponse(&p)
	}
	return res
}
