package domain

import (
	"fmt"
	"time"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the stored lifecycle state of an invoice. OVERDUE is
// deliberately absent: it is derived from OPEN plus a passed due date and is
// never written to the status column.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceOpen      InvoiceStatus = "OPEN"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceItem is one billed line. Total is always Quantity × UnitAmount.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitAmount  Money           `json:"unitAmount"`
	Total       Money           `json:"total"`
}

// Invoice is a billing document owned by a client within an org. Line items
// are created and deleted together with the invoice.
type Invoice struct {
	InvoiceID     string        `json:"invoiceID"`
	OrgID         string        `json:"orgID"`
	ClientID      string        `json:"clientID"`
	Number        string        `json:"number"`
	Status        InvoiceStatus `json:"status"`
	IssueDate     time.Time     `json:"issueDate"`
	DueDate       time.Time     `json:"dueDate"`
	BillingMonth  string        `json:"billingMonth,omitempty"` // "YYYY-MM", set for generated monthly invoices
	Items         []InvoiceItem `json:"items"`
	Subtotal      Money         `json:"subtotal"`
	Discount      Money         `json:"discount"`
	Tax           Money         `json:"tax"`
	Total         Money         `json:"total"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
	CancelReason  string        `json:"cancelReason,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	InternalNotes string        `json:"internalNotes,omitempty"`
	AuditFields
}

// NewInvoiceItem computes the line total from quantity and unit amount.
func NewInvoiceItem(description string, quantity decimal.Decimal, unitAmount Money) (InvoiceItem, error) {
	if description == "" {
		return InvoiceItem{}, fmt.Errorf("%w: item description is required", apperrors.ErrValidation)
	}
	if !quantity.IsPositive() {
		return InvoiceItem{}, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
	}
	if unitAmount.IsNegative() {
		return InvoiceItem{}, fmt.Errorf("%w: unit amount cannot be negative", apperrors.ErrInvalidAmount)
	}
	total, err := NewMoney(quantity.Mul(unitAmount.Amount), unitAmount.Currency)
	if err != nil {
		return InvoiceItem{}, err
	}
	return InvoiceItem{
		Description: description,
		Quantity:    quantity,
		UnitAmount:  unitAmount,
		Total:       total,
	}, nil
}

// NewInvoice validates items and totals and builds the invoice. The totals
// invariant (subtotal = Σ items, total = subtotal − discount + tax) is
// enforced here so a stored invoice can never disagree with its lines.
func NewInvoice(id, orgID, clientID, number string, status InvoiceStatus, issueDate, dueDate time.Time, items []InvoiceItem, discount, tax Money) (Invoice, error) {
	if orgID == "" || clientID == "" {
		return Invoice{}, fmt.Errorf("%w: org ID and client ID are required", apperrors.ErrValidation)
	}
	if status != InvoiceDraft && status != InvoiceOpen {
		return Invoice{}, fmt.Errorf("%w: invoices start as DRAFT or OPEN, not %s", apperrors.ErrValidation, status)
	}
	if len(items) == 0 {
		return Invoice{}, fmt.Errorf("%w: invoice needs at least one line item", apperrors.ErrValidation)
	}
	if discount.IsNegative() || tax.IsNegative() {
		return Invoice{}, fmt.Errorf("%w: discount and tax cannot be negative", apperrors.ErrInvalidAmount)
	}
	subtotal := ZeroMoney(items[0].Total.Currency)
	var err error
	for _, item := range items {
		subtotal, err = subtotal.Add(item.Total)
		if err != nil {
			return Invoice{}, err
		}
	}
	total, err := subtotal.Subtract(discount)
	if err != nil {
		return Invoice{}, err
	}
	total, err = total.Add(tax)
	if err != nil {
		return Invoice{}, err
	}
	if total.IsNegative() {
		return Invoice{}, fmt.Errorf("%w: invoice total cannot be negative", apperrors.ErrInvalidAmount)
	}
	return Invoice{
		InvoiceID: id,
		OrgID:     orgID,
		ClientID:  clientID,
		Number:    number,
		Status:    status,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Items:     items,
		Subtotal:  subtotal,
		Discount:  discount,
		Tax:       tax,
		Total:     total,
	}, nil
}

// IsOverdue reports the derived OVERDUE view: still open and past due.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceOpen && i.DueDate.Before(now)
}

// Open moves a DRAFT invoice to OPEN so it can receive payments.
func (i *Invoice) Open() error {
	if i.Status != InvoiceDraft {
		return fmt.Errorf("%w: only DRAFT invoices can be opened, got %s", apperrors.ErrValidation, i.Status)
	}
	i.Status = InvoiceOpen
	return nil
}

// ApprovePayment marks the invoice PAID. Legal from OPEN (including the
// derived OVERDUE view) only. When paidAt is nil the due date is used.
func (i *Invoice) ApprovePayment(paidAt *time.Time, notes string) error {
	switch i.Status {
	case InvoicePaid:
		return apperrors.ErrAlreadyPaid
	case InvoiceCancelled:
		return apperrors.ErrCannotPayCancelled
	case InvoiceDraft:
		return fmt.Errorf("%w: cannot approve payment on a DRAFT invoice", apperrors.ErrValidation)
	}
	when := i.DueDate
	if paidAt != nil {
		when = *paidAt
	}
	i.Status = InvoicePaid
	i.PaidAt = &when
	if notes != "" {
		i.InternalNotes = notes
	}
	return nil
}

// Cancel marks the invoice CANCELLED. Legal from OPEN only; PAID and
// CANCELLED are terminal in both directions.
func (i *Invoice) Cancel(reason string, at time.Time) error {
	switch i.Status {
	case InvoicePaid:
		return apperrors.ErrCannotCancelPaid
	case InvoiceCancelled:
		return apperrors.ErrAlreadyCancelled
	case InvoiceDraft:
		return fmt.Errorf("%w: only OPEN invoices can be cancelled", apperrors.ErrValidation)
	}
	i.Status = InvoiceCancelled
	i.CancelledAt = &at
	i.CancelReason = reason
	return nil
}

// DaysLate returns how many whole days after the due date the payment landed,
// never negative.
func (i *Invoice) DaysLate(paidAt time.Time) int {
	if !paidAt.After(i.DueDate) {
		return 0
	}
	return int(paidAt.Sub(i.DueDate).Hours() / 24)
}
