package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// PeriodSvcFacade manages accounting periods and their open/closed lifecycle.
type PeriodSvcFacade interface {
	// CreatePeriod creates a period after combination and overlap validation.
	CreatePeriod(ctx context.Context, groupID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error)

	// GetPeriodByID retrieves a period the user may see.
	GetPeriodByID(ctx context.Context, periodID, userID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves a page of a group's periods with the total count.
	ListPeriods(ctx context.Context, groupID string, params dto.ListPeriodsParams, userID string) ([]domain.AccountingPeriod, int, error)

	// DeletePeriod hard-deletes a period. Blocked while journal entries fall
	// inside its date range.
	DeletePeriod(ctx context.Context, periodID, userID string) error

	// ClosePeriod closes a period when no draft or pending entries remain in
	// its date range.
	ClosePeriod(ctx context.Context, periodID, userID string) (*domain.AccountingPeriod, error)

	// ReopenPeriod clears the closed state of a closed period.
	ReopenPeriod(ctx context.Context, periodID, userID string) (*domain.AccountingPeriod, error)
}
