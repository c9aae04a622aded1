package services

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/dto"
)

// PaymentSvcFacade handles payment records and their state machine. Payment
// status is independent of invoice status; the two are only coordinated when
// a verified payment covers the invoice total.
type PaymentSvcFacade interface {
	// GetPaymentByID retrieves a payment.
	GetPaymentByID(ctx context.Context, orgID string, paymentID string) (*domain.Payment, error)

	// CreatePayment registers a PENDING payment against an invoice.
	CreatePayment(ctx context.Context, orgID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// ProcessPayment records clearance with a mandatory reference.
	ProcessPayment(ctx context.Context, orgID string, paymentID string, req dto.ProcessPaymentRequest, userID string) (*domain.Payment, error)

	// VerifyPayment confirms a processed payment. When the verified amount
	// covers the invoice total, the invoice's payment approval runs in the
	// same call.
	VerifyPayment(ctx context.Context, orgID string, paymentID string, userID string) (*domain.Payment, error)

	// RefundPayment refunds a verified payment, fully or partially.
	RefundPayment(ctx context.Context, orgID string, paymentID string, req dto.RefundPaymentRequest, userID string) (*domain.Payment, error)
}

// InstallmentSvcFacade manages clients' installment plans.
type InstallmentSvcFacade interface {
	// PreviewPlan runs the pure plan generator without persisting.
	PreviewPlan(ctx context.Context, orgID string, clientID string, req dto.GenerateInstallmentPlanRequest) ([]domain.Installment, error)

	// RegeneratePlan replaces the client's plan wholesale with a freshly
	// generated one.
	RegeneratePlan(ctx context.Context, orgID string, clientID string, req dto.GenerateInstallmentPlanRequest, userID string) ([]domain.Installment, error)

	// ListInstallments retrieves a client's plan ordered by number.
	ListInstallments(ctx context.Context, orgID string, clientID string) ([]domain.Installment, error)

	// ConfirmInstallment settles one installment.
	ConfirmInstallment(ctx context.Context, orgID string, clientID string, number int, userID string) (*domain.Installment, error)
}
