package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/core/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockJournalRepo *MockJournalRepository
	mockAuthorizer  *MockGroupAuthorizer
	service         portssvc.PeriodSvcFacade
	ctx             context.Context
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAuthorizer = new(MockGroupAuthorizer)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockJournalRepo, suite.mockAuthorizer)
	suite.ctx = context.Background()
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func (suite *PeriodServiceTestSuite) expectAdmin(groupID string) {
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", groupID, domain.RoleAdmin).Return(nil).Once()
}

func (suite *PeriodServiceTestSuite) monthRequest() dto.CreatePeriodRequest {
	month := 3
	return dto.CreatePeriodRequest{
		PeriodType: domain.PeriodMonth,
		FiscalYear: 2026,
		Month:      &month,
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	suite.expectAdmin("group-1")
	req := suite.monthRequest()
	suite.mockPeriodRepo.On("CountByCombination", suite.ctx, "group-1", domain.PeriodMonth, 2026, req.Month, "").
		Return(0, nil).Once()
	suite.mockPeriodRepo.On("CountOverlapping", suite.ctx, "group-1", domain.PeriodMonth, req.StartDate, req.EndDate, "").
		Return(0, nil).Once()
	suite.mockPeriodRepo.On("SavePeriod", suite.ctx, mock.AnythingOfType("domain.AccountingPeriod")).
		Run(func(args mock.Arguments) {
			period := args.Get(1).(domain.AccountingPeriod)
			suite.Equal("group-1", period.GroupID)
			suite.Equal(domain.PeriodMonth, period.PeriodType)
			suite.False(period.Closed)
		}).
		Return(nil).Once()

	period, err := suite.service.CreatePeriod(suite.ctx, "group-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.NotEmpty(period.PeriodID)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_MonthRequiredForMonthPeriods() {
	suite.expectAdmin("group-1")
	req := suite.monthRequest()
	req.Month = nil

	period, err := suite.service.CreatePeriod(suite.ctx, "group-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_MonthForbiddenForFiscalYear() {
	suite.expectAdmin("group-1")
	month := 1
	req := dto.CreatePeriodRequest{
		PeriodType: domain.PeriodFiscalYear,
		FiscalYear: 2026,
		Month:      &month,
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	period, err := suite.service.CreatePeriod(suite.ctx, "group-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_StartAfterEnd() {
	suite.expectAdmin("group-1")
	req := suite.monthRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	period, err := suite.service.CreatePeriod(suite.ctx, "group-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(period)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleInvalidDateRange, ruleErr.Rule)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_DuplicateCombination() {
	suite.expectAdmin("group-1")
	req := suite.monthRequest()
	suite.mockPeriodRepo.On("CountByCombination", suite.ctx, "group-1", domain.PeriodMonth, 2026, req.Month, "").
		Return(1, nil).Once()

	period, err := suite.service.CreatePeriod(suite.ctx, "group-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(period)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleDuplicatePeriod, ruleErr.Rule)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Overlap() {
	suite.expectAdmin("group-1")
	req := suite.monthRequest()
	suite.mockPeriodRepo.On("CountByCombination", suite.ctx, "group-1", domain.PeriodMonth, 2026, req.Month, "").
		Return(0, nil).Once()
	suite.mockPeriodRepo.On("CountOverlapping", suite.ctx, "group-1", domain.PeriodMonth, req.StartDate, req.EndDate, "").
		Return(1, nil).Once()

	period, err := suite.service.CreatePeriod(suite.ctx, "group-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(period)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleOverlappingPeriod, ruleErr.Rule)
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_BlockedByEntriesInRange() {
	period := &domain.AccountingPeriod{
		PeriodID:  "period-1",
		GroupID:   "group-1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.expectAdmin("group-1")
	suite.mockJournalRepo.On("CountEntriesInRange", suite.ctx, "group-1", period.StartDate, period.EndDate).
		Return(4, nil).Once()

	err := suite.service.DeletePeriod(suite.ctx, "period-1", "user-1")

	suite.Require().Error(err)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleHasJournalEntries, ruleErr.Rule)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "DeletePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_BlockedByUnpostedEntries() {
	period := &domain.AccountingPeriod{
		PeriodID:  "period-1",
		GroupID:   "group-1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.expectAdmin("group-1")
	suite.mockJournalRepo.On("CountUnpostedInRange", suite.ctx, "group-1", period.StartDate, period.EndDate).
		Return(2, nil).Once()

	got, err := suite.service.ClosePeriod(suite.ctx, "period-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RulePeriodNotClosable, ruleErr.Rule)
	suite.Equal(2, ruleErr.Details["unpostedCount"])
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	period := &domain.AccountingPeriod{PeriodID: "period-1", GroupID: "group-1", Closed: true}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.expectAdmin("group-1")

	got, err := suite.service.ClosePeriod(suite.ctx, "period-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleAlreadyClosed, ruleErr.Rule)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	period := &domain.AccountingPeriod{
		PeriodID:  "period-1",
		GroupID:   "group-1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.expectAdmin("group-1")
	suite.mockJournalRepo.On("CountUnpostedInRange", suite.ctx, "group-1", period.StartDate, period.EndDate).
		Return(0, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, "period-1", "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	got, err := suite.service.ClosePeriod(suite.ctx, "period-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.True(got.Closed)
	suite.Require().NotNil(got.ClosedAt)
	suite.Require().NotNil(got.ClosedBy)
	suite.Equal("user-1", *got.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_AlreadyOpen() {
	period := &domain.AccountingPeriod{PeriodID: "period-1", GroupID: "group-1", Closed: false}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.expectAdmin("group-1")

	got, err := suite.service.ReopenPeriod(suite.ctx, "period-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleAlreadyOpen, ruleErr.Rule)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_Success() {
	closedAt := time.Now().Add(-24 * time.Hour)
	closedBy := "user-9"
	period := &domain.AccountingPeriod{
		PeriodID: "period-1", GroupID: "group-1",
		Closed: true, ClosedAt: &closedAt, ClosedBy: &closedBy,
	}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.expectAdmin("group-1")
	suite.mockPeriodRepo.On("ReopenPeriod", suite.ctx, "period-1", "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	got, err := suite.service.ReopenPeriod(suite.ctx, "period-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.False(got.Closed)
	suite.Nil(got.ClosedAt)
	suite.Nil(got.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGetPeriodByID_MembershipChecked() {
	period := &domain.AccountingPeriod{PeriodID: "period-1", GroupID: "group-1"}
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleMember).
		Return(apperrors.NewForbiddenError("user is not a member of this group")).Once()

	got, err := suite.service.GetPeriodByID(suite.ctx, "period-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}
