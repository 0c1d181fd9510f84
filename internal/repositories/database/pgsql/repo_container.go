package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full repository set over one pgx pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:      newPgxClientRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		CashbookRepo:    newPgxCashbookRepository(dbPool),
		CapitalRepo:     newPgxCapitalRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
	}
}
