package repositories

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its line items, scoped to the org.
	FindInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByOrg retrieves a paginated list of invoices using token-based pagination.
	ListInvoicesByOrg(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ExistsForClientMonth reports whether a generated invoice already exists
	// for (org, client, billing month). The monthly generator's idempotency
	// check; must be called inside an atomic unit to be race-safe.
	ExistsForClientMonth(ctx context.Context, orgID string, clientID string, month string) (bool, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice inserts an invoice together with all its line items.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus persists a state transition (status, paidAt,
	// cancelledAt, cancel reason, internal notes).
	UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceLocker defines lock-and-reload operations that are only meaningful
// inside an atomic unit.
type InvoiceLocker interface {
	// FindInvoiceByIDForUpdate reloads the invoice under a row lock so its
	// state can be re-validated before writing.
	FindInvoiceByIDForUpdate(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceLocker
}
