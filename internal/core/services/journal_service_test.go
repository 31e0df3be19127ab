package services_test

import (
	"context"
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

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockCompanyRepo *MockCompanyRepository
	mockChartRepo   *MockChartRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	mockGroupRepo   *MockGroupRepository
	mockAuthorizer  *MockGroupAuthorizer
	service         portssvc.JournalSvcFacade
	ctx             context.Context
	company         *domain.Company
	chart           *domain.ChartOfAccounts
	entryDate       time.Time
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockChartRepo = new(MockChartRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockAuthorizer = new(MockGroupAuthorizer)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockCompanyRepo,
		suite.mockChartRepo,
		suite.mockAccountRepo,
		suite.mockPeriodRepo,
		suite.mockGroupRepo,
		suite.mockAuthorizer,
	)
	suite.ctx = context.Background()
	suite.company = &domain.Company{CompanyID: "company-1", GroupID: "group-1", Name: "Empresa Uno"}
	suite.chart = &domain.ChartOfAccounts{ChartID: "chart-1", GroupID: "group-1"}
	suite.entryDate = time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) expectCompanyAndRole(role domain.UserGroupRole) {
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, "company-1").Return(suite.company, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", role).Return(nil).Once()
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "Compra de insumos",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: "acc-expense", Debit: decimal.NewFromInt(100), CurrencyCode: "UYU"},
			{AccountID: "acc-cash", Credit: decimal.NewFromInt(100), CurrencyCode: "UYU"},
		},
	}
}

func (suite *JournalServiceTestSuite) postableAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"acc-expense": {AccountID: "acc-expense", ChartID: "chart-1", Code: "5.1", Postable: true, IsActive: true},
		"acc-cash":    {AccountID: "acc-cash", ChartID: "chart-1", Code: "1.1.1", Postable: true, IsActive: true},
	}
}

func (suite *JournalServiceTestSuite) groupConfig() *domain.AccountingConfiguration {
	config := domain.DefaultAccountingConfiguration("group-1")
	return &config
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(0, nil).Once()
	suite.mockChartRepo.On("FindChartByGroupID", suite.ctx, "group-1").Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-expense", "acc-cash"}).
		Return(suite.postableAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			suite.Equal("company-1", entry.CompanyID)
			suite.Equal(domain.StatusDraft, entry.Status)
			suite.Len(entry.Lines, 2)
			suite.True(entry.IsBalanced())
			suite.Equal(entry.EntryID, entry.Lines[0].EntryID)
		}).
		Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", suite.balancedRequest(), "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.StatusDraft, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeLineAmount() {
	suite.expectCompanyAndRole(domain.RoleMember)
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.NewFromInt(-100)

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BothDebitAndCreditSet() {
	suite.expectCompanyAndRole(domain.RoleMember)
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(50)

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NeitherDebitNorCreditSet() {
	suite.expectCompanyAndRole(domain.RoleMember)
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.Zero

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleUnbalancedEntry, ruleErr.Rule)
	suite.Equal("100", ruleErr.Details["totalDebits"])
	suite.Equal("90", ruleErr.Details["totalCredits"])
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnbalancedAllowedByConfiguration() {
	suite.expectCompanyAndRole(domain.RoleMember)
	config := suite.groupConfig()
	config.AllowUnbalancedEntries = true
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(config, nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(0, nil).Once()
	suite.mockChartRepo.On("FindChartByGroupID", suite.ctx, "group-1").Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-expense", "acc-cash"}).
		Return(suite.postableAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ClosedPeriod() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(1, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", suite.balancedRequest(), "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RulePeriodClosed, ruleErr.Rule)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NotPostableAccount() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(0, nil).Once()
	suite.mockChartRepo.On("FindChartByGroupID", suite.ctx, "group-1").Return(suite.chart, nil).Once()
	accounts := suite.postableAccounts()
	notPostable := accounts["acc-expense"]
	notPostable.Postable = false
	accounts["acc-expense"] = notPostable
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-expense", "acc-cash"}).
		Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", suite.balancedRequest(), "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleNotPostable, ruleErr.Rule)
	suite.Equal("acc-expense", ruleErr.Details["accountID"])
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountFromAnotherChart() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(0, nil).Once()
	suite.mockChartRepo.On("FindChartByGroupID", suite.ctx, "group-1").Return(suite.chart, nil).Once()
	accounts := suite.postableAccounts()
	foreign := accounts["acc-cash"]
	foreign.ChartID = "chart-other"
	accounts["acc-cash"] = foreign
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-expense", "acc-cash"}).
		Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", suite.balancedRequest(), "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuxiliaryReferenceRequired() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(0, nil).Once()
	suite.mockChartRepo.On("FindChartByGroupID", suite.ctx, "group-1").Return(suite.chart, nil).Once()
	auxType := domain.AuxiliaryCustomer
	accounts := suite.postableAccounts()
	receivable := accounts["acc-expense"]
	receivable.RequiresAuxiliary = true
	receivable.AuxiliaryType = &auxType
	accounts["acc-expense"] = receivable
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-expense", "acc-cash"}).
		Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", suite.balancedRequest(), "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleAuxiliaryTypeRequired, ruleErr.Rule)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuxiliaryTypeMismatch() {
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockPeriodRepo.On("CountClosedPeriodsContaining", suite.ctx, "group-1", suite.entryDate).Return(0, nil).Once()
	suite.mockChartRepo.On("FindChartByGroupID", suite.ctx, "group-1").Return(suite.chart, nil).Once()
	customer := domain.AuxiliaryCustomer
	accounts := suite.postableAccounts()
	receivable := accounts["acc-expense"]
	receivable.RequiresAuxiliary = true
	receivable.AuxiliaryType = &customer
	accounts["acc-expense"] = receivable
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-expense", "acc-cash"}).
		Return(accounts, nil).Once()

	supplier := domain.AuxiliarySupplier
	supplierID := "party-1"
	req := suite.balancedRequest()
	req.Lines[0].AuxiliaryType = &supplier
	req.Lines[0].AuxiliaryID = &supplierID

	entry, err := suite.service.CreateEntry(suite.ctx, "company-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleAuxiliaryTypeRequired, ruleErr.Rule)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_OnlyFromDraft() {
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusConfirmed}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.expectCompanyAndRole(domain.RoleMember)

	got, err := suite.service.SubmitEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleInvalidStatusTransition, ruleErr.Rule)
	suite.Equal("CONFIRMED", ruleErr.Details["status"])
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_Success() {
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusDraft}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.expectCompanyAndRole(domain.RoleMember)
	suite.mockJournalRepo.On("UpdateEntryStatus", suite.ctx, "entry-1", domain.StatusPendingApproval, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	got, err := suite.service.SubmitEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal(domain.StatusPendingApproval, got.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_RequiresAdmin() {
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusPendingApproval}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, "company-1").Return(suite.company, nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", suite.ctx, "user-1", "group-1", domain.RoleAdmin).
		Return(apperrors.NewForbiddenError("this action requires the ADMIN role")).Once()

	got, err := suite.service.ApproveEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_FromPendingApproval() {
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusPendingApproval}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.expectCompanyAndRole(domain.RoleAdmin)
	suite.mockJournalRepo.On("UpdateEntryStatus", suite.ctx, "entry-1", domain.StatusConfirmed, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	got, err := suite.service.ApproveEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal(domain.StatusConfirmed, got.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_DraftBelowMinimumConfirmsDirectly() {
	entry := &domain.JournalEntry{
		EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusDraft,
		Lines: []domain.EntryLine{
			{Debit: decimal.NewFromInt(100)},
			{Credit: decimal.NewFromInt(100)},
		},
	}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.expectCompanyAndRole(domain.RoleAdmin)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", suite.ctx, "entry-1", domain.StatusConfirmed, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	got, err := suite.service.ApproveEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal(domain.StatusConfirmed, got.Status)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_DraftAtMinimumMustBeSubmitted() {
	entry := &domain.JournalEntry{
		EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusDraft,
		Lines: []domain.EntryLine{
			{Debit: decimal.NewFromInt(50000)},
			{Credit: decimal.NewFromInt(50000)},
		},
	}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.expectCompanyAndRole(domain.RoleAdmin)
	suite.mockGroupRepo.On("FindConfigurationByGroupID", suite.ctx, "group-1").Return(suite.groupConfig(), nil).Once()

	got, err := suite.service.ApproveEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleApprovalRequired, ruleErr.Rule)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_ReversedRejected() {
	entry := &domain.JournalEntry{EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusReversed}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "entry-1").Return(entry, nil).Once()
	suite.expectCompanyAndRole(domain.RoleAdmin)

	got, err := suite.service.ApproveEntry(suite.ctx, "entry-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(got)
	var ruleErr *apperrors.BusinessRuleError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal(apperrors.RuleInvalidStatusTransition, ruleErr.Rule)
}

func (suite *JournalServiceTestSuite) TestListEntries_StatusFilterPassedThrough() {
	suite.expectCompanyAndRole(domain.RoleMember)
	status := domain.StatusDraft
	params := dto.ListJournalEntriesParams{Status: &status}
	params.Page = 1
	params.Limit = 10
	entries := []domain.JournalEntry{{EntryID: "entry-1", CompanyID: "company-1", Status: domain.StatusDraft}}
	suite.mockJournalRepo.On("ListEntriesByCompany", suite.ctx, "company-1", &status, 10, 0).
		Return(entries, 1, nil).Once()

	got, total, err := suite.service.ListEntries(suite.ctx, "company-1", params, "user-1")

	suite.Require().NoError(err)
	suite.Equal(1, total)
	suite.Len(got, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}
