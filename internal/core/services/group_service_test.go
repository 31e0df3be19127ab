package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/core/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockGroupRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.GroupSvcFacade
	ctx           context.Context
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewGroupService(suite.mockGroupRepo, suite.mockUserRepo)
	suite.ctx = context.Background()
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}

func (suite *GroupServiceTestSuite) adminMembership(userID, groupID string) *domain.UserGroup {
	return &domain.UserGroup{UserID: userID, GroupID: groupID, Role: domain.RoleAdmin, JoinedAt: time.Now()}
}

func (suite *GroupServiceTestSuite) memberMembership(userID, groupID string) *domain.UserGroup {
	return &domain.UserGroup{UserID: userID, GroupID: groupID, Role: domain.RoleMember, JoinedAt: time.Now()}
}

func (suite *GroupServiceTestSuite) TestCreateGroup_Success() {
	req := dto.CreateGroupRequest{Name: "Grupo Andino", MainCountry: "UY", BaseCurrency: "UYU"}
	creatorID := "user-1"

	suite.mockGroupRepo.On("ProvisionGroup", suite.ctx,
		mock.AnythingOfType("domain.EconomicGroup"),
		mock.AnythingOfType("domain.UserGroup"),
		mock.AnythingOfType("domain.AccountingConfiguration"),
		mock.AnythingOfType("domain.ChartOfAccounts")).
		Run(func(args mock.Arguments) {
			group := args.Get(1).(domain.EconomicGroup)
			membership := args.Get(2).(domain.UserGroup)
			config := args.Get(3).(domain.AccountingConfiguration)
			chart := args.Get(4).(domain.ChartOfAccounts)

			suite.Equal("Grupo Andino", group.Name)
			suite.Equal("UY", group.MainCountry)
			suite.Equal("UYU", group.BaseCurrency)
			suite.True(group.IsActive)
			suite.Equal(creatorID, group.CreatedBy)

			suite.Equal(creatorID, membership.UserID)
			suite.Equal(group.GroupID, membership.GroupID)
			suite.Equal(domain.RoleAdmin, membership.Role)

			suite.Equal(group.GroupID, config.GroupID)
			suite.Equal(group.GroupID, chart.GroupID)
			suite.NotEmpty(chart.ChartID)
		}).
		Return(nil).Once()

	group, err := suite.service.CreateGroup(suite.ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.NotEmpty(group.GroupID)
	suite.WithinDuration(time.Now(), group.CreatedAt, time.Second)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_UnsupportedCountry() {
	req := dto.CreateGroupRequest{Name: "Grupo", MainCountry: "FR", BaseCurrency: "EUR"}

	group, err := suite.service.CreateGroup(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(group)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "ProvisionGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_CurrencyNotAllowedForCountry() {
	req := dto.CreateGroupRequest{Name: "Grupo", MainCountry: "UY", BaseCurrency: "ARS"}

	group, err := suite.service.CreateGroup(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(group)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleInvalidCurrencyForCountry, ruleErr.Rule)
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_NotAMember() {
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-1", "group-1").
		Return(nil, apperrors.NewNotFoundError("membership not found")).Once()

	err := suite.service.AuthorizeUserAction(suite.ctx, "user-1", "group-1", domain.RoleMember)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_MemberLacksAdminRole() {
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-1", "group-1").
		Return(suite.memberMembership("user-1", "group-1"), nil).Once()

	err := suite.service.AuthorizeUserAction(suite.ctx, "user-1", "group-1", domain.RoleAdmin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_AdminAllowed() {
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-1", "group-1").
		Return(suite.adminMembership("user-1", "group-1"), nil).Once()

	err := suite.service.AuthorizeUserAction(suite.ctx, "user-1", "group-1", domain.RoleAdmin)

	suite.Require().NoError(err)
}

func (suite *GroupServiceTestSuite) TestGetGroupByID_MemberCanRead() {
	group := &domain.EconomicGroup{GroupID: "group-1", Name: "Grupo", IsActive: true}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-1", "group-1").
		Return(suite.memberMembership("user-1", "group-1"), nil).Once()

	got, err := suite.service.GetGroupByID(suite.ctx, "group-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(group, got)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestGetGroupByID_NotFound() {
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("group not found")).Once()

	got, err := suite.service.GetGroupByID(suite.ctx, "missing", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestUpdateGroup_RequiresAdmin() {
	group := &domain.EconomicGroup{GroupID: "group-1", Name: "Grupo", IsActive: true}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-1", "group-1").
		Return(suite.memberMembership("user-1", "group-1"), nil).Once()

	newName := "Nuevo Nombre"
	got, err := suite.service.UpdateGroup(suite.ctx, "group-1", dto.UpdateGroupRequest{Name: &newName}, "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "UpdateGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestUpdateGroup_Success() {
	group := &domain.EconomicGroup{GroupID: "group-1", Name: "Grupo", IsActive: true}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Once()
	suite.mockGroupRepo.On("UpdateGroup", suite.ctx, mock.AnythingOfType("domain.EconomicGroup")).
		Return(nil).Once()

	newName := "Grupo Renombrado"
	got, err := suite.service.UpdateGroup(suite.ctx, "group-1", dto.UpdateGroupRequest{Name: &newName}, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal("Grupo Renombrado", got.Name)
	suite.Equal("admin-1", got.LastUpdatedBy)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestAddUserToGroup_TargetUserMissing() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "ghost").
		Return(nil, apperrors.NewNotFoundError("user not found")).Once()

	err := suite.service.AddUserToGroup(suite.ctx, "admin-1", "ghost", "group-1", domain.RoleMember)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "AddUserToGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestAddUserToGroup_Success() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	target := &domain.User{UserID: "user-2", Email: "target@example.com", IsActive: true}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-2").Return(target, nil).Once()
	suite.mockGroupRepo.On("AddUserToGroup", suite.ctx, mock.AnythingOfType("domain.UserGroup")).
		Run(func(args mock.Arguments) {
			membership := args.Get(1).(domain.UserGroup)
			suite.Equal("user-2", membership.UserID)
			suite.Equal(domain.RoleMember, membership.Role)
		}).
		Return(nil).Once()

	err := suite.service.AddUserToGroup(suite.ctx, "admin-1", "user-2", "group-1", domain.RoleMember)

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_LastAdminBlocked() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Twice()
	suite.mockGroupRepo.On("ListUsersByGroupID", suite.ctx, "group-1").
		Return([]domain.UserGroup{
			{UserID: "admin-1", GroupID: "group-1", Role: domain.RoleAdmin},
			{UserID: "user-2", GroupID: "group-1", Role: domain.RoleMember},
		}, nil).Once()

	err := suite.service.RemoveUserFromGroup(suite.ctx, "admin-1", "admin-1", "group-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "RemoveUserFromGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_SelfRemovalAsMember() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-2", "group-1").
		Return(suite.memberMembership("user-2", "group-1"), nil).Twice()
	suite.mockGroupRepo.On("RemoveUserFromGroup", suite.ctx, "user-2", "group-1").
		Return(nil).Once()

	err := suite.service.RemoveUserFromGroup(suite.ctx, "user-2", "user-2", "group-1")

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_AdminRemovesOtherAdmin() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-2", "group-1").
		Return(suite.adminMembership("admin-2", "group-1"), nil).Once()
	suite.mockGroupRepo.On("ListUsersByGroupID", suite.ctx, "group-1").
		Return([]domain.UserGroup{
			{UserID: "admin-1", GroupID: "group-1", Role: domain.RoleAdmin},
			{UserID: "admin-2", GroupID: "group-1", Role: domain.RoleAdmin},
		}, nil).Once()
	suite.mockGroupRepo.On("RemoveUserFromGroup", suite.ctx, "admin-2", "group-1").
		Return(nil).Once()

	err := suite.service.RemoveUserFromGroup(suite.ctx, "admin-1", "admin-2", "group-1")

	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestUpdateConfiguration_NegativeMinimumRejected() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	config := domain.DefaultAccountingConfiguration("group-1")
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Once()
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").
		Return(&config, nil).Once()

	negative := decimal.NewFromInt(-1)
	got, err := suite.service.UpdateConfiguration(suite.ctx, "group-1",
		dto.UpdateConfigurationRequest{MinimumApprovalAmount: &negative}, "admin-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "UpdateConfiguration", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestRemoveUserFromGroup_TargetNotAMember() {
	group := &domain.EconomicGroup{GroupID: "group-1"}
	suite.mockGroupRepo.On("FindGroupByID", suite.ctx, "group-1").Return(group, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "admin-1", "group-1").
		Return(suite.adminMembership("admin-1", "group-1"), nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", suite.ctx, "user-9", "group-1").
		Return(nil, apperrors.NewNotFoundError("membership not found")).Once()

	err := suite.service.RemoveUserFromGroup(suite.ctx, "admin-1", "user-9", "group-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_RepositoryError() {
	req := dto.CreateGroupRequest{Name: "Grupo", MainCountry: "CL", BaseCurrency: "CLP"}
	suite.mockGroupRepo.On("ProvisionGroup", suite.ctx,
		mock.AnythingOfType("domain.EconomicGroup"),
		mock.AnythingOfType("domain.UserGroup"),
		mock.AnythingOfType("domain.AccountingConfiguration"),
		mock.AnythingOfType("domain.ChartOfAccounts")).
		Return(errors.New("db write failed")).Once()

	group, err := suite.service.CreateGroup(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(group)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}
