package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/core/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

type ChartServiceTestSuite struct {
	suite.Suite
	mockChartRepo   *MockChartRepository
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockGroupAuthorizer
	service         portssvc.ChartSvcFacade
	ctx             context.Context
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockChartRepo = new(MockChartRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockGroupAuthorizer)
	suite.service = services.NewChartService(suite.mockChartRepo, suite.mockAccountRepo, suite.mockAuthorizer)
	suite.ctx = context.Background()
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}

func (suite *ChartServiceTestSuite) TestCreateChart_GroupAlreadyHasOne() {
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleAdmin).Return(nil).Once()
	suite.mockChartRepo.On("CountChartsByGroupID", suite.ctx, "group-1").Return(1, nil).Once()

	chart, err := suite.service.CreateChart(suite.ctx, dto.CreateChartRequest{GroupID: "group-1", Name: "Plan"}, "user-1")

	suite.Require().Error(err)
	suite.Nil(chart)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockChartRepo.AssertNotCalled(suite.T(), "SaveChart", mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestCreateChart_Success() {
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleAdmin).Return(nil).Once()
	suite.mockChartRepo.On("CountChartsByGroupID", suite.ctx, "group-1").Return(0, nil).Once()
	suite.mockChartRepo.On("SaveChart", suite.ctx, mock.AnythingOfType("domain.ChartOfAccounts")).
		Run(func(args mock.Arguments) {
			chart := args.Get(1).(domain.ChartOfAccounts)
			suite.Equal("group-1", chart.GroupID)
			suite.True(chart.IsActive)
		}).
		Return(nil).Once()

	chart, err := suite.service.CreateChart(suite.ctx, dto.CreateChartRequest{GroupID: "group-1", Name: "Plan de Cuentas"}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(chart)
	suite.NotEmpty(chart.ChartID)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestDeactivateChart_BlockedByAccounts() {
	chart := &domain.ChartOfAccounts{ChartID: "chart-1", GroupID: "group-1"}
	suite.mockChartRepo.On("FindChartByID", suite.ctx, "chart-1").Return(chart, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleAdmin).Return(nil).Once()
	suite.mockAccountRepo.On("CountAccountsByChartID", suite.ctx, "chart-1").Return(12, nil).Once()

	err := suite.service.DeactivateChart(suite.ctx, "chart-1", "user-1")

	suite.Require().Error(err)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleChartHasAccounts, ruleErr.Rule)
	suite.Equal(12, ruleErr.Details["accountCount"])
	suite.mockChartRepo.AssertNotCalled(suite.T(), "DeactivateChart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestDeactivateChart_Success() {
	chart := &domain.ChartOfAccounts{ChartID: "chart-1", GroupID: "group-1"}
	suite.mockChartRepo.On("FindChartByID", suite.ctx, "chart-1").Return(chart, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleAdmin).Return(nil).Once()
	suite.mockAccountRepo.On("CountAccountsByChartID", suite.ctx, "chart-1").Return(0, nil).Once()
	suite.mockChartRepo.On("DeactivateChart", suite.ctx, "chart-1", "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateChart(suite.ctx, "chart-1", "user-1")

	suite.Require().NoError(err)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestGetChartByGroupID_MembershipChecked() {
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleMember).
		Return(apperrors.NewForbiddenError("user is not a member of this group")).Once()

	chart, err := suite.service.GetChartByGroupID(suite.ctx, "group-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(chart)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockChartRepo.AssertNotCalled(suite.T(), "FindChartByGroupID", mock.Anything, mock.Anything)
}
