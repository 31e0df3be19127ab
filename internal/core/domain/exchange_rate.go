package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated conversion rate into the group's base currency.
// The (group, date, source, target) combination is unique.
type ExchangeRate struct {
	RateID         string          `json:"rateID"`
	GroupID        string          `json:"groupID"`
	RateDate       time.Time       `json:"rateDate"`
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"` // Always the group's base currency
	Rate           decimal.Decimal `json:"rate"`
	AuditFields
}
