package domain

import (
	"fmt"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
)

// PaymentStatus is the lifecycle state of a payment record. Transitions are
// strictly linear: PENDING → PROCESSED → VERIFIED → REFUNDED.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentProcessed PaymentStatus = "PROCESSED"
	PaymentVerified  PaymentStatus = "VERIFIED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// PaymentMethod names how the money moved.
type PaymentMethod string

const (
	MethodPix      PaymentMethod = "PIX"
	MethodBoleto   PaymentMethod = "BOLETO"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// paymentNext maps each state to the only state it may advance to.
var paymentNext = map[PaymentStatus]PaymentStatus{
	PaymentPending:   PaymentProcessed,
	PaymentProcessed: PaymentVerified,
	PaymentVerified:  PaymentRefunded,
}

// Payment records money movement against an invoice. Its state machine is
// coordinated with, but independent of, the invoice's own status.
type Payment struct {
	PaymentID      string        `json:"paymentID"`
	OrgID          string        `json:"orgID"`
	InvoiceID      string        `json:"invoiceID"`
	Amount         Money         `json:"amount"`
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	Reference      string        `json:"reference,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	RefundedAmount *Money        `json:"refundedAmount,omitempty"`
	AuditFields
}

// NewPayment builds a PENDING payment against an invoice.
func NewPayment(id, orgID, invoiceID string, amount Money, method PaymentMethod) (Payment, error) {
	if orgID == "" || invoiceID == "" {
		return Payment{}, fmt.Errorf("%w: org ID and invoice ID are required", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return Payment{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrInvalidAmount)
	}
	return Payment{
		PaymentID: id,
		OrgID:     orgID,
		InvoiceID: invoiceID,
		Amount:    amount,
		Method:    method,
		Status:    PaymentPending,
	}, nil
}

func (p *Payment) advance(from, to PaymentStatus) error {
	if p.Status != from {
		return fmt.Errorf("%w: payment must be %s to become %s, got %s", apperrors.ErrValidation, from, to, p.Status)
	}
	if paymentNext[from] != to {
		return fmt.Errorf("%w: payment cannot move from %s to %s", apperrors.ErrValidation, from, to)
	}
	p.Status = to
	return nil
}

// MarkProcessed records that the movement cleared; a bank/gateway reference
// is mandatory at this point.
func (p *Payment) MarkProcessed(reference string) error {
	if reference == "" {
		return fmt.Errorf("%w: processing a payment requires a reference", apperrors.ErrValidation)
	}
	if err := p.advance(PaymentPending, PaymentProcessed); err != nil {
		return err
	}
	p.Reference = reference
	return nil
}

// Verify confirms a processed payment against the invoice.
func (p *Payment) Verify() error {
	return p.advance(PaymentProcessed, PaymentVerified)
}

// Refund moves a verified payment to REFUNDED, fully when amount is nil or
// partially for a positive amount up to the paid value.
func (p *Payment) Refund(amount *Money) error {
	refunded := p.Amount
	if amount != nil {
		if !amount.IsPositive() {
			return fmt.Errorf("%w: refund amount must be positive", apperrors.ErrInvalidAmount)
		}
		cmp, err := amount.Cmp(p.Amount)
		if err != nil {
			return err
		}
		if cmp > 0 {
			return fmt.Errorf("%w: refund exceeds paid amount", apperrors.ErrInvalidAmount)
		}
		refunded = *amount
	}
	if err := p.advance(PaymentVerified, PaymentRefunded); err != nil {
		return err
	}
	p.RefundedAmount = &refunded
	return nil
}
