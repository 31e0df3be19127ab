package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/google/uuid"
)

// PeriodService handles business logic for accounting periods and their
// close/reopen lifecycle.
type PeriodService struct {
	BaseService
	periodRepo  portsrepo.PeriodRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(pr portsrepo.PeriodRepositoryFacade, jr portsrepo.JournalRepositoryFacade, authorizer portssvc.GroupAuthorizerSvc) portssvc.PeriodSvcFacade {
	return &PeriodService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		periodRepo:  pr,
		journalRepo: jr,
	}
}

// Ensure PeriodService implements the portssvc.PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*PeriodService)(nil)

// CreatePeriod creates a period after validating the month rule for its
// type, the date range, the combination uniqueness and the overlap rule.
func (s *PeriodService) CreatePeriod(ctx context.Context, groupID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	switch req.PeriodType {
	case domain.PeriodMonth:
		if req.Month == nil {
			return nil, apperrors.NewValidationFailedError("month is required for MONTH periods")
		}
	case domain.PeriodFiscalYear:
		if req.Month != nil {
			return nil, apperrors.NewValidationFailedError("month must not be set for FISCAL_YEAR periods")
		}
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidDateRange,
			"startDate must be before endDate")
	}

	count, err := s.periodRepo.CountByCombination(ctx, groupID, req.PeriodType, req.FiscalYear, req.Month, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check period uniqueness: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleDuplicatePeriod,
			"a period for this year and month already exists in the group")
	}

	overlapping, err := s.periodRepo.CountOverlapping(ctx, groupID, req.PeriodType, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlapping > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleOverlappingPeriod,
			"the date range overlaps an existing period of the same type").
			WithDetail("overlappingPeriods", overlapping)
	}

	now := time.Now()
	period := domain.AccountingPeriod{
		PeriodID:   uuid.NewString(),
		GroupID:    groupID,
		PeriodType: req.PeriodType,
		FiscalYear: req.FiscalYear,
		Month:      req.Month,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Closed:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save accounting period", slog.String("group_id", groupID))
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period created",
		slog.String("period_id", period.PeriodID),
		slog.String("group_id", groupID))
	return &period, nil
}

// GetPeriodByID retrieves a period the caller's membership covers.
func (s *PeriodService) GetPeriodByID(ctx context.Context, periodID, userID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, period.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return period, nil
}

// ListPeriods retrieves a page of a group's periods.
func (s *PeriodService) ListPeriods(ctx context.Context, groupID string, params dto.ListPeriodsParams, userID string) ([]domain.AccountingPeriod, int, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, 0, err
	}
	return s.periodRepo.ListPeriods(ctx, groupID, params.PeriodType, params.Limit, params.Offset())
}

// DeletePeriod hard-deletes a period. Blocked while journal entries of the
// group's companies fall inside its date range.
func (s *PeriodService) DeletePeriod(ctx context.Context, periodID, userID string) error {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, period.GroupID, domain.RoleAdmin); err != nil {
		return err
	}

	entryCount, err := s.journalRepo.CountEntriesInRange(ctx, period.GroupID, period.StartDate, period.EndDate)
	if err != nil {
		return fmt.Errorf("failed to count entries in period range: %w", err)
	}
	if entryCount > 0 {
		return apperrors.NewBusinessRuleError(apperrors.RuleHasJournalEntries,
			"journal entries fall inside this period and it cannot be deleted").
			WithDetail("entryCount", entryCount)
	}

	return s.periodRepo.DeletePeriod(ctx, periodID)
}

// ClosePeriod closes a period once no DRAFT or PENDING_APPROVAL entries of
// the group's companies remain inside its date range.
func (s *PeriodService) ClosePeriod(ctx context.Context, periodID, userID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, period.GroupID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if period.Closed {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleAlreadyClosed, "period is already closed")
	}

	unposted, err := s.journalRepo.CountUnpostedInRange(ctx, period.GroupID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count unposted entries in period range: %w", err)
	}
	if unposted > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RulePeriodNotClosable,
			"period has draft or pending journal entries and cannot be closed").
			WithDetail("unpostedCount", unposted)
	}

	now := time.Now()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to close accounting period", slog.String("period_id", periodID))
		return nil, err
	}

	period.Closed = true
	period.ClosedAt = &now
	period.ClosedBy = &userID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "Accounting period closed", slog.String("period_id", periodID))
	return period, nil
}

// ReopenPeriod clears the closed state of a closed period.
func (s *PeriodService) ReopenPeriod(ctx context.Context, periodID, userID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, period.GroupID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !period.Closed {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleAlreadyOpen, "period is already open")
	}

	now := time.Now()
	if err := s.periodRepo.ReopenPeriod(ctx, periodID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reopen accounting period", slog.String("period_id", periodID))
		return nil, err
	}

	period.Closed = false
	period.ClosedAt = nil
	period.ClosedBy = nil
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "Accounting period reopened", slog.String("period_id", periodID))
	return period, nil
}
