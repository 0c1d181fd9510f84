package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both record-store backends (pgsql and localstore) build one of these.
type RepositoryProvider struct {
	ClientRepo      ClientRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	CashbookRepo    CashbookRepositoryFacade
	CapitalRepo     CapitalRepositoryFacade
	ReportingRepo   ReportingRepository
}
