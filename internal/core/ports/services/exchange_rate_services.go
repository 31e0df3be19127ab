package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// ExchangeRateSvcFacade manages a group's exchange rates.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate creates a rate into the group's base currency.
	CreateExchangeRate(ctx context.Context, groupID string, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error)

	// GetExchangeRateByID retrieves a rate the user may see.
	GetExchangeRateByID(ctx context.Context, rateID, userID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves a page of a group's rates with the total count.
	ListExchangeRates(ctx context.Context, groupID string, params dto.ListExchangeRatesParams, userID string) ([]domain.ExchangeRate, int, error)

	// DeleteExchangeRate hard-deletes a rate.
	DeleteExchangeRate(ctx context.Context, rateID, userID string) error
}
