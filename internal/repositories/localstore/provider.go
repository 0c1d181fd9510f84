package localstore

import (
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full repository set over one file store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:      newLocalClientRepository(store),
		TransactionRepo: newLocalTransactionRepository(store),
		CashbookRepo:    newLocalCashbookRepository(store),
		CapitalRepo:     newLocalCapitalRepository(store),
		ReportingRepo:   newLocalReportingRepository(store),
	}
}
