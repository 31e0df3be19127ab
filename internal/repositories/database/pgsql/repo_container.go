package pgsql

import (
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	groupRepo := newPgxGroupRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	chartRepo := newPgxChartRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		GroupRepo:        groupRepo,
		CompanyRepo:      companyRepo,
		ChartRepo:        chartRepo,
		AccountRepo:      accountRepo,
		PeriodRepo:       periodRepo,
		PartyRepo:        partyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		JournalRepo:      journalRepo,
	}
}
