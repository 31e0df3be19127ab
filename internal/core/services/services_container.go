package services

import (
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Group service first since every other group-scoped service depends on
	// its authorizer.
	container.Group = NewGroupService(repos.GroupRepo, repos.UserRepo)

	groupAuthorizer := container.Group.(portssvc.GroupAuthorizerSvc)
	groupReader := container.Group.(portssvc.GroupReaderSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)
	container.Company = NewCompanyService(repos.CompanyRepo, repos.JournalRepo, repos.UserRepo, groupAuthorizer)
	container.Chart = NewChartService(repos.ChartRepo, repos.AccountRepo, groupAuthorizer)
	container.Account = NewAccountService(repos.AccountRepo, repos.ChartRepo, repos.JournalRepo, groupAuthorizer)
	container.Period = NewPeriodService(repos.PeriodRepo, repos.JournalRepo, groupAuthorizer)
	container.Party = NewPartyService(repos.PartyRepo, groupAuthorizer)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, groupReader, groupAuthorizer)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.CompanyRepo,
		repos.ChartRepo,
		repos.AccountRepo,
		repos.PeriodRepo,
		repos.GroupRepo,
		groupAuthorizer,
	)

	return container
}
