package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	GroupRepo        GroupRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	ChartRepo        ChartRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	PeriodRepo       PeriodRepositoryFacade
	PartyRepo        PartyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	JournalRepo      JournalRepositoryFacade
}
