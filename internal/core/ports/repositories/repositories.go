package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	InvoiceRepo     InvoiceRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	ClientRepo      ClientRepositoryFacade
	InstallmentRepo InstallmentRepositoryFacade
	CostItemRepo    CostItemRepositoryFacade
	UnitOfWork      UnitOfWork
}
