package services

// ServiceContainer holds instances of all the application services. Handlers
// receive this and pick what they need.
type ServiceContainer struct {
	Client      ClientSvcFacade
	Loan        LoanSvcFacade
	Payment     PaymentSvcFacade
	Transaction TransactionSvcFacade
	Cashbook    CashbookSvcFacade
	Capital     CapitalSvcFacade
	Reporting   ReportingSvcFacade
	SMS         SMSSvcFacade
	Auth        AuthSvcFacade
}
