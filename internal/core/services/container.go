package services

import (
	"log/slog"

	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// The coordinator is shared: it is the single funnel for multi-record writes.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	coordinator := NewAtomicCoordinator(repos.UnitOfWork)
	return &portssvc.ServiceContainer{
		Invoice:          NewInvoiceService(repos.InvoiceRepo, repos.ClientRepo, coordinator),
		Transaction:      NewTransactionService(repos.TransactionRepo),
		Payment:          NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, coordinator, logger),
		Installment:      NewInstallmentService(repos.ClientRepo, repos.InstallmentRepo, repos.UnitOfWork),
		InvoiceGenerator: NewInvoiceGeneratorService(repos.ClientRepo, repos.InvoiceRepo, coordinator, logger),
		RecurringCost:    NewRecurringCostService(coordinator, logger),
	}
}
