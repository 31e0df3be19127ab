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

// ExchangeRateService handles business logic for exchange rates. Rates
// always convert into the group's base currency.
type ExchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	groupReader portssvc.GroupReaderSvc
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rr portsrepo.ExchangeRateRepositoryFacade, gr portssvc.GroupReaderSvc, authorizer portssvc.GroupAuthorizerSvc) portssvc.ExchangeRateSvcFacade {
	return &ExchangeRateService{
		BaseService: BaseService{GroupAuthorizer: authorizer},
		rateRepo:    rr,
		groupReader: gr,
	}
}

// Ensure ExchangeRateService implements the portssvc.ExchangeRateSvcFacade interface
var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate creates a rate after validating the amount, the
// currency pair against the group's base currency, the date and uniqueness.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, groupID string, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	group, err := s.groupReader.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !req.Rate.IsPositive() {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidRate, "rate must be greater than zero")
	}
	if req.SourceCurrency == req.TargetCurrency {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleSameCurrency,
			"source and target currency must differ")
	}
	if req.TargetCurrency != group.BaseCurrency {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidTargetCurrency,
			"target currency must be the group's base currency "+group.BaseCurrency)
	}
	if req.RateDate.After(time.Now()) {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleFutureDate, "rateDate cannot be in the future")
	}

	count, err := s.rateRepo.CountByKey(ctx, groupID, req.RateDate, req.SourceCurrency, req.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate uniqueness: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleDuplicateRate,
			"a rate for this date and currency pair already exists in the group")
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		RateID:         uuid.NewString(),
		GroupID:        groupID,
		RateDate:       req.RateDate,
		SourceCurrency: req.SourceCurrency,
		TargetCurrency: req.TargetCurrency,
		Rate:           req.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("group_id", groupID))
		return nil, err
	}
	return &rate, nil
}

// GetExchangeRateByID retrieves a rate the caller's membership covers.
func (s *ExchangeRateService) GetExchangeRateByID(ctx context.Context, rateID, userID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, rate.GroupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return rate, nil
}

// ListExchangeRates retrieves a page of a group's rates, newest first.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, groupID string, params dto.ListExchangeRatesParams, userID string) ([]domain.ExchangeRate, int, error) {
	if err := s.AuthorizeUser(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, 0, err
	}
	return s.rateRepo.ListExchangeRates(ctx, groupID, params.SourceCurrency, params.Limit, params.Offset())
}

// DeleteExchangeRate hard-deletes a rate. ADMIN only.
func (s *ExchangeRateService) DeleteExchangeRate(ctx context.Context, rateID, userID string) error {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, userID, rate.GroupID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.rateRepo.DeleteExchangeRate(ctx, rateID)
}
