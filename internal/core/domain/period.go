package domain

import "time"

// PeriodType distinguishes a whole fiscal year from a single month.
type PeriodType string

const (
	PeriodFiscalYear PeriodType = "FISCAL_YEAR"
	PeriodMonth      PeriodType = "MONTH"
)

// AccountingPeriod is a date range of an EconomicGroup that can be closed
// once no draft or pending journal entries remain inside it.
type AccountingPeriod struct {
	PeriodID   string     `json:"periodID"`
	GroupID    string     `json:"groupID"`
	PeriodType PeriodType `json:"periodType"`
	FiscalYear int        `json:"fiscalYear"`
	Month      *int       `json:"month"` // 1..12, set only for MONTH periods
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Closed     bool       `json:"closed"`
	ClosedAt   *time.Time `json:"closedAt"`
	ClosedBy   *string    `json:"closedBy"`
	AuditFields
}

// Contains reports whether the given date falls inside the period range,
// boundaries included.
func (p *AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Overlaps reports whether two date ranges intersect.
func (p *AccountingPeriod) Overlaps(start, end time.Time) bool {
	return !p.EndDate.Before(start) && !p.StartDate.After(end)
}
