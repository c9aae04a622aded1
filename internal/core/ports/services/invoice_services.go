package services

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices in an org.
	ListInvoices(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines the invoice state-transition operations. Every
// multi-record effect runs through the atomic coordinator.
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new invoice with its items, optionally with a
	// pending income ledger entry, in one atomic unit.
	CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// ApprovePayment marks an invoice paid and records the confirmed income
	// ledger entry in the same atomic unit.
	ApprovePayment(ctx context.Context, orgID string, invoiceID string, req dto.ApprovePaymentRequest, userID string) (*domain.Invoice, error)

	// CancelInvoice cancels an open invoice and any pending ledger entries
	// referencing it in the same atomic unit.
	CancelInvoice(ctx context.Context, orgID string, invoiceID string, req dto.CancelInvoiceRequest, userID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// InvoiceGeneratorSvcFacade runs the idempotent monthly invoice batch.
type InvoiceGeneratorSvcFacade interface {
	// GenerateMonthlyInvoices creates at most one OPEN invoice per eligible
	// client for the month. Safe to re-run: existing (org, client, month)
	// invoices are reported as skipped, never duplicated.
	GenerateMonthlyInvoices(ctx context.Context, params dto.GenerateMonthlyInvoicesParams, actorUserID string) (*dto.GenerateMonthlyInvoicesResult, error)
}

// RecurringCostSvcFacade materializes recurring costs into ledger entries.
type RecurringCostSvcFacade interface {
	// MaterializeMonthlyCosts creates one pending EXPENSE entry per active
	// monthly cost item not yet materialized for the month.
	MaterializeMonthlyCosts(ctx context.Context, params dto.MaterializeMonthlyCostsParams, actorUserID string) (*dto.MaterializeMonthlyCostsResult, error)
}
