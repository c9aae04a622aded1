package repositories

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment scoped to the org.
	FindPaymentByID(ctx context.Context, orgID string, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoice retrieves all payments recorded against an invoice.
	ListPaymentsByInvoice(ctx context.Context, orgID string, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment inserts a payment record.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment persists a payment state transition.
	UpdatePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
