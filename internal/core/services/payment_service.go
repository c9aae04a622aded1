package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
	"github.com/agencydesk/agency_management_app/internal/utils/validation"
)

// paymentService handles payment records and their state machine.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	coordinator *AtomicCoordinator
	logger      *slog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, coordinator *AtomicCoordinator, logger *slog.Logger) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) GetPaymentByID(ctx context.Context, orgID string, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, orgID, paymentID)
}

// CreatePayment registers a PENDING payment against an existing invoice.
func (s *paymentService) CreatePayment(ctx context.Context, orgID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, orgID, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil, apperrors.ErrCannotPayCancelled
	}
	amount, err := domain.NewMoney(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	payment, err := domain.NewPayment(uuid.NewString(), orgID, invoice.InvoiceID, amount, domain.PaymentMethod(req.Method))
	if err != nil {
		return nil, err
	}
	payment.Notes = req.Notes
	payment.AuditFields = domain.NewAuditFields(creatorUserID, time.Now())
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment for invoice %s: %w", invoice.InvoiceID, err)
	}
	return &payment, nil
}

// ProcessPayment records clearance with a mandatory reference.
func (s *paymentService) ProcessPayment(ctx context.Context, orgID string, paymentID string, req dto.ProcessPaymentRequest, userID string) (*domain.Payment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.mutate(ctx, orgID, paymentID, userID, func(p *domain.Payment) error {
		return p.MarkProcessed(req.Reference)
	})
}

// VerifyPayment confirms a processed payment. When the verified amount covers
// the invoice total, the invoice's payment approval runs in the same call so
// the PAID status and its income ledger entry land together.
func (s *paymentService) VerifyPayment(ctx context.Context, orgID string, paymentID string, userID string) (*domain.Payment, error) {
	payment, err := s.mutate(ctx, orgID, paymentID, userID, func(p *domain.Payment) error {
		return p.Verify()
	})
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, orgID, payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	covers, err := payment.Amount.Cmp(invoice.Total)
	if err != nil {
		return nil, err
	}
	if covers < 0 {
		return payment, nil
	}
	now := time.Now()
	_, _, err = s.coordinator.ApproveInvoicePayment(ctx, orgID, payment.InvoiceID, &now, payment.Notes, userID, now)
	if err != nil && !errors.Is(err, apperrors.ErrAlreadyPaid) {
		return nil, err
	}
	if errors.Is(err, apperrors.ErrAlreadyPaid) {
		s.logger.WarnContext(ctx, "verified payment against an invoice already paid",
			slog.String("paymentID", payment.PaymentID), slog.String("invoiceID", payment.InvoiceID))
	}
	return payment, nil
}

// RefundPayment refunds a verified payment, fully when no amount is given.
func (s *paymentService) RefundPayment(ctx context.Context, orgID string, paymentID string, req dto.RefundPaymentRequest, userID string) (*domain.Payment, error) {
	return s.mutate(ctx, orgID, paymentID, userID, func(p *domain.Payment) error {
		var amount *domain.Money
		if req.Amount != nil {
			m, err := domain.NewMoney(*req.Amount, p.Amount.Currency)
			if err != nil {
				return err
			}
			amount = &m
		}
		return p.Refund(amount)
	})
}

// mutate loads a payment, applies one state transition and persists it.
func (s *paymentService) mutate(ctx context.Context, orgID, paymentID, userID string, fn func(*domain.Payment) error) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, orgID, paymentID)
	if err != nil {
		return nil, err
	}
	if err := fn(payment); err != nil {
		return nil, err
	}
	payment.Touch(userID, time.Now())
	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}
	return payment, nil
}
