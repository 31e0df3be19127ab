package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// ExchangeRateRepositoryFacade defines persistence operations for exchange
// rates. Rates are hard-deleted.
type ExchangeRateRepositoryFacade interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindExchangeRateByID retrieves a rate by its unique identifier.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves a page of a group's rates, newest first,
	// with the total count. sourceCurrency, when non-empty, filters rates.
	ListExchangeRates(ctx context.Context, groupID, sourceCurrency string, limit, offset int) ([]domain.ExchangeRate, int, error)

	// DeleteExchangeRate removes a rate row.
	DeleteExchangeRate(ctx context.Context, rateID string) error

	// CountByKey counts rates matching (group, date, source, target).
	CountByKey(ctx context.Context, groupID string, date time.Time, source, target string) (int, error)
}
