package repositories

import "context"

// TxRepositories bundles the repositories bound to one atomic unit. Every
// call made through them sees, and is committed with, the same transaction.
type TxRepositories struct {
	Invoices     InvoiceRepositoryFacade
	Transactions TransactionRepositoryFacade
	Payments     PaymentRepositoryFacade
	Clients      ClientRepositoryFacade
	Installments InstallmentRepositoryFacade
	CostItems    CostItemRepositoryFacade
}

// UnitOfWork executes a closure of repository calls with all-or-nothing
// semantics at read-committed isolation, bounded by a lock-wait timeout and
// an overall execution timeout. A unit that exceeds either timeout rolls
// back in full and surfaces apperrors.ErrTimeout; implementations map
// conflicting concurrent writes to apperrors.ErrConcurrentModification.
//
// State read before Execute may be stale: callers must re-validate entity
// state through the TxRepositories before writing.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
