package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and is
// what the external API layer and the background jobs are handed.
type ServiceContainer struct {
	Invoice          InvoiceSvcFacade
	Transaction      TransactionSvcFacade
	Payment          PaymentSvcFacade
	Installment      InstallmentSvcFacade
	InvoiceGenerator InvoiceGeneratorSvcFacade
	RecurringCost    RecurringCostSvcFacade
}
