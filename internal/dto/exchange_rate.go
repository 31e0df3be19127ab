package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines data for creating an exchange rate.
type CreateExchangeRateRequest struct {
	RateDate       time.Time       `json:"rateDate" binding:"required"`
	SourceCurrency string          `json:"sourceCurrency" binding:"required,iso4217"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,iso4217"`
	Rate           decimal.Decimal `json:"rate" binding:"required"`
}

// ListExchangeRatesParams defines query parameters for listing rates.
type ListExchangeRatesParams struct {
	ListParams
	SourceCurrency string `form:"sourceCurrency" binding:"omitempty,iso4217"`
}

// ExchangeRateResponse defines data returned for an exchange rate.
type ExchangeRateResponse struct {
	RateID         string          `json:"rateID"`
	GroupID        string          `json:"groupID"`
	RateDate       time.Time       `json:"rateDate"`
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToExchangeRateResponse converts domain.ExchangeRate to DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		RateID:         r.RateID,
		GroupID:        r.GroupID,
		RateDate:       r.RateDate,
		SourceCurrency: r.SourceCurrency,
		TargetCurrency: r.TargetCurrency,
		Rate:           r.Rate,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i, r := range rates {
		res[i] = ToExchangeRateResponse(&r)
	}
	return res
}
