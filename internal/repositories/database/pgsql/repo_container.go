package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository over the pool plus the unit of
// work the coordinator funnels multi-record writes through.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout, execTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		ClientRepo:      newPgxClientRepository(dbPool),
		InstallmentRepo: newPgxInstallmentRepository(dbPool),
		CostItemRepo:    newPgxCostItemRepository(dbPool),
		UnitOfWork:      NewPgxUnitOfWork(dbPool, lockTimeout, execTimeout),
	}
}
