package services

import (
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gateway portssvc.SMSGateway, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.SMS = NewSMSService(gateway, repos.ClientRepo, cfg.SMSWorkers)
	container.Client = NewClientService(repos.ClientRepo, repos.TransactionRepo, repos.CashbookRepo)
	container.Loan = NewLoanService(repos.ClientRepo, repos.TransactionRepo, repos.CashbookRepo, notifier)
	container.Payment = NewPaymentService(repos.ClientRepo, repos.TransactionRepo, repos.CashbookRepo, container.SMS, notifier)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.ClientRepo, repos.CashbookRepo, notifier)
	container.Cashbook = NewCashbookService(repos.CashbookRepo, repos.TransactionRepo, notifier, cfg.RepairDelay)
	container.Capital = NewCapitalService(repos.CapitalRepo, repos.CashbookRepo, notifier)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Auth = NewAuthService(cfg)

	return container
}
