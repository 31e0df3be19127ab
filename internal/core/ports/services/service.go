package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User         UserSvcFacade
	Auth         AuthSvcFacade
	Group        GroupSvcFacade
	Company      CompanySvcFacade
	Chart        ChartSvcFacade
	Account      AccountSvcFacade
	Period       PeriodSvcFacade
	Party        PartySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Journal      JournalSvcFacade
}
