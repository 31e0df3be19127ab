package dto

import (
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit or credit line of a new journal entry.
// Exactly one of debit/credit must be positive; the other must be zero or
// omitted.
type CreateEntryLineRequest struct {
	AccountID     string                `json:"accountID" binding:"required"`
	Debit         decimal.Decimal       `json:"debit"`
	Credit        decimal.Decimal       `json:"credit"`
	CurrencyCode  string                `json:"currencyCode" binding:"required,iso4217"`
	AuxiliaryType *domain.AuxiliaryType `json:"auxiliaryType" binding:"omitempty,oneof=CUSTOMER SUPPLIER EMPLOYEE OTHER"`
	AuxiliaryID   *string               `json:"auxiliaryID"`
	ExchangeRate  *decimal.Decimal      `json:"exchangeRate"`
}

// CreateJournalEntryRequest defines data for creating a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	ListParams
	Status *domain.EntryStatus `form:"status" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL CONFIRMED REVERSED"`
}

// EntryLineResponse defines data returned for one entry line.
type EntryLineResponse struct {
	LineID        string                `json:"lineID"`
	AccountID     string                `json:"accountID"`
	Debit         decimal.Decimal       `json:"debit"`
	Credit        decimal.Decimal       `json:"credit"`
	CurrencyCode  string                `json:"currencyCode"`
	AuxiliaryType *domain.AuxiliaryType `json:"auxiliaryType,omitempty"`
	AuxiliaryID   *string               `json:"auxiliaryID,omitempty"`
	ExchangeRate  *decimal.Decimal      `json:"exchangeRate,omitempty"`
}

// JournalEntryResponse defines data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string              `json:"entryID"`
	CompanyID     string              `json:"companyID"`
	EntryDate     time.Time           `json:"entryDate"`
	Description   string              `json:"description"`
	Status        domain.EntryStatus  `json:"status"`
	Amount        decimal.Decimal     `json:"amount"`
	Lines         []EntryLineResponse `json:"lines"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts domain.JournalEntry to DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:        l.LineID,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			CurrencyCode:  l.CurrencyCode,
			AuxiliaryType: l.AuxiliaryType,
			AuxiliaryID:   l.AuxiliaryID,
			ExchangeRate:  l.ExchangeRate,
		}
	}
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		EntryDate:     e.EntryDate,
		Description:   e.Description,
		Status:        e.Status,
		Amount:        e.Amount(),
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToListJournalEntryResponse converts a slice of domain.JournalEntry to DTOs.
func ToListJournalEntryResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToJournalEntryResponse(&e)
	}
	return res
}
