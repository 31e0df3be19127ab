package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft           EntryStatus = "DRAFT"
	StatusPendingApproval EntryStatus = "PENDING_APPROVAL"
	StatusConfirmed       EntryStatus = "CONFIRMED"
	StatusReversed        EntryStatus = "REVERSED"
)

// JournalEntry is a dated set of entry lines posted against a company.
// Period closing only considers entries in DRAFT or PENDING_APPROVAL.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`
	CompanyID   string      `json:"companyID"`
	EntryDate   time.Time   `json:"entryDate"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	Lines       []EntryLine `json:"lines"`
	AuditFields
}

// EntryLine is one debit or credit against a postable account. Exactly one
// of Debit/Credit is positive; the other is zero.
type EntryLine struct {
	LineID        string           `json:"lineID"`
	EntryID       string           `json:"entryID"`
	AccountID     string           `json:"accountID"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	CurrencyCode  string           `json:"currencyCode"`
	AuxiliaryType *AuxiliaryType   `json:"auxiliaryType"`
	AuxiliaryID   *string          `json:"auxiliaryID"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate"`
	AuditFields
}

// TotalDebits sums the debit side of the entry.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}

// Amount is the economic value of a balanced entry, the debit side total.
func (e *JournalEntry) Amount() decimal.Decimal {
	return e.TotalDebits()
}
