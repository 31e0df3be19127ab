package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// Shared mock repositories for the service test suites.

// MockGroupAuthorizer is a mock type for the GroupAuthorizerSvc interface
type MockGroupAuthorizer struct {
	mock.Mock
}

func (m *MockGroupAuthorizer) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.UserGroupRole) error {
	args := m.Called(ctx, userID, groupID, requiredRole)
	return args.Error(0)
}

// MockGroupReader is a mock type for the GroupReaderSvc interface
type MockGroupReader struct {
	mock.Mock
}

func (m *MockGroupReader) FindGroupByID(ctx context.Context, groupID string) (*domain.EconomicGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EconomicGroup), args.Error(1)
}

// MockGroupRepository is a mock type for the GroupRepositoryFacade interface
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.EconomicGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EconomicGroup), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.EconomicGroup, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EconomicGroup), args.Int(1), args.Error(2)
}

func (m *MockGroupRepository) FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.UserGroup, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserGroup), args.Error(1)
}

func (m *MockGroupRepository) ProvisionGroup(ctx context.Context, group domain.EconomicGroup, membership domain.UserGroup, config domain.AccountingConfiguration, chart domain.ChartOfAccounts) error {
	args := m.Called(ctx, group, membership, config, chart)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateGroup(ctx context.Context, group domain.EconomicGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) DeactivateGroup(ctx context.Context, groupID string, userID string, now time.Time) error {
	args := m.Called(ctx, groupID, userID, now)
	return args.Error(0)
}

func (m *MockGroupRepository) AddUserToGroup(ctx context.Context, membership domain.UserGroup) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID string) error {
	args := m.Called(ctx, userID, groupID)
	return args.Error(0)
}

func (m *MockGroupRepository) ListUsersByGroupID(ctx context.Context, groupID string) ([]domain.UserGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserGroup), args.Error(1)
}

func (m *MockGroupRepository) FindConfigurationByGroupID(ctx context.Context, groupID string) (*domain.AccountingConfiguration, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingConfiguration), args.Error(1)
}

func (m *MockGroupRepository) UpdateConfiguration(ctx context.Context, config domain.AccountingConfiguration) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, updatedBy, now)
	return args.Error(0)
}

// MockCompanyRepository is a mock type for the CompanyRepositoryFacade interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context, groupID, search string, limit, offset int) ([]domain.Company, int, error) {
	args := m.Called(ctx, groupID, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Company), args.Int(1), args.Error(2)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeactivateCompany(ctx context.Context, companyID string, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, userID, now)
	return args.Error(0)
}

func (m *MockCompanyRepository) CountByRut(ctx context.Context, groupID, rut, excludeID string) (int, error) {
	args := m.Called(ctx, groupID, rut, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompanyRepository) GrantUserCompany(ctx context.Context, grant domain.UserCompany) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockCompanyRepository) RevokeUserCompany(ctx context.Context, userID, companyID string) error {
	args := m.Called(ctx, userID, companyID)
	return args.Error(0)
}

func (m *MockCompanyRepository) ListUsersByCompanyID(ctx context.Context, companyID string) ([]domain.UserCompany, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCompany), args.Error(1)
}

// MockChartRepository is a mock type for the ChartRepositoryFacade interface
type MockChartRepository struct {
	mock.Mock
}

func (m *MockChartRepository) SaveChart(ctx context.Context, chart domain.ChartOfAccounts) error {
	args := m.Called(ctx, chart)
	return args.Error(0)
}

func (m *MockChartRepository) FindChartByID(ctx context.Context, chartID string) (*domain.ChartOfAccounts, error) {
	args := m.Called(ctx, chartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccounts), args.Error(1)
}

func (m *MockChartRepository) FindChartByGroupID(ctx context.Context, groupID string) (*domain.ChartOfAccounts, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccounts), args.Error(1)
}

func (m *MockChartRepository) CountChartsByGroupID(ctx context.Context, groupID string) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockChartRepository) DeactivateChart(ctx context.Context, chartID string, userID string, now time.Time) error {
	args := m.Called(ctx, chartID, userID, now)
	return args.Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, chartID string, postable *bool, limit, offset int) ([]domain.Account, int, error) {
	args := m.Called(ctx, chartID, postable, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Int(1), args.Error(2)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context, chartID string) ([]domain.Account, error) {
	args := m.Called(ctx, chartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountByCode(ctx context.Context, chartID, code, excludeID string) (int, error) {
	args := m.Called(ctx, chartID, code, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) CountSubaccounts(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) CountAccountsByChartID(ctx context.Context, chartID string) (int, error) {
	args := m.Called(ctx, chartID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// MockPeriodRepository is a mock type for the PeriodRepositoryFacade interface
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, groupID string, periodType *domain.PeriodType, limit, offset int) ([]domain.AccountingPeriod, int, error) {
	args := m.Called(ctx, groupID, periodType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Int(1), args.Error(2)
}

func (m *MockPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

func (m *MockPeriodRepository) CountByCombination(ctx context.Context, groupID string, periodType domain.PeriodType, fiscalYear int, month *int, excludeID string) (int, error) {
	args := m.Called(ctx, groupID, periodType, fiscalYear, month, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) CountOverlapping(ctx context.Context, groupID string, periodType domain.PeriodType, start, end time.Time, excludeID string) (int, error) {
	args := m.Called(ctx, groupID, periodType, start, end, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) CountClosedPeriodsContaining(ctx context.Context, groupID string, date time.Time) (int, error) {
	args := m.Called(ctx, groupID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID, closedBy string, closedAt time.Time) error {
	args := m.Called(ctx, periodID, closedBy, closedAt)
	return args.Error(0)
}

func (m *MockPeriodRepository) ReopenPeriod(ctx context.Context, periodID, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, userID, now)
	return args.Error(0)
}

// MockPartyRepository is a mock type for the PartyRepositoryFacade interface
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, groupID string, partyType domain.PartyType, search string, limit, offset int) ([]domain.Party, int, error) {
	args := m.Called(ctx, groupID, partyType, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Party), args.Int(1), args.Error(2)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	args := m.Called(ctx, partyID, userID, now)
	return args.Error(0)
}

func (m *MockPartyRepository) CountByName(ctx context.Context, groupID string, partyType domain.PartyType, name, excludeID string) (int, error) {
	args := m.Called(ctx, groupID, partyType, name, excludeID)
	return args.Int(0), args.Error(1)
}

// MockExchangeRateRepository is a mock type for the ExchangeRateRepositoryFacade interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, groupID, sourceCurrency string, limit, offset int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, groupID, sourceCurrency, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) CountByKey(ctx context.Context, groupID string, date time.Time, source, target string) (int, error) {
	args := m.Called(ctx, groupID, date, source, target)
	return args.Int(0), args.Error(1)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, status *domain.EntryStatus, limit, offset int) ([]domain.JournalEntry, int, error) {
	args := m.Called(ctx, companyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Int(1), args.Error(2)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, status, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) CountUnpostedInRange(ctx context.Context, groupID string, start, end time.Time) (int, error) {
	args := m.Called(ctx, groupID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) CountEntriesInRange(ctx context.Context, groupID string, start, end time.Time) (int, error) {
	args := m.Called(ctx, groupID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) CountEntriesByCompany(ctx context.Context, companyID string) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) CountLinesByAccount(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}
