package dto

import (
	"time"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemInput is one requested line item. The stored total is always
// recomputed from quantity and unit amount, never taken from the caller.
type InvoiceItemInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitAmount  decimal.Decimal `json:"unitAmount" validate:"required"`
}

// CreateInvoiceRequest creates an invoice with its items, optionally together
// with an income ledger entry, in one atomic unit.
type CreateInvoiceRequest struct {
	ClientID          string             `json:"clientID" validate:"required"`
	Number            string             `json:"number"`
	Status            string             `json:"status" validate:"omitempty,oneof=DRAFT OPEN"`
	IssueDate         time.Time          `json:"issueDate" validate:"required"`
	DueDate           time.Time          `json:"dueDate" validate:"required"`
	Currency          string             `json:"currency" validate:"required,len=3,uppercase"`
	Items             []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
	Discount          decimal.Decimal    `json:"discount"`
	Tax               decimal.Decimal    `json:"tax"`
	Notes             string             `json:"notes"`
	InternalNotes     string             `json:"internalNotes"`
	CreateTransaction bool               `json:"createTransaction"`
}

// ApprovePaymentRequest marks an invoice paid.
type ApprovePaymentRequest struct {
	PaidAt *time.Time `json:"paidAt"`
	Notes  string     `json:"notes"`
}

// CancelInvoiceRequest cancels an open invoice.
type CancelInvoiceRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// InvoiceItemResponse mirrors a stored line item.
type InvoiceItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unitAmount"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse is the external view of an invoice. Overdue is derived at
// response time from the status and due date.
type InvoiceResponse struct {
	InvoiceID    string                `json:"invoiceID"`
	OrgID        string                `json:"orgID"`
	ClientID     string                `json:"clientID"`
	Number       string                `json:"number"`
	Status       string                `json:"status"`
	Overdue      bool                  `json:"overdue"`
	IssueDate    time.Time             `json:"issueDate"`
	DueDate      time.Time             `json:"dueDate"`
	BillingMonth string                `json:"billingMonth,omitempty"`
	Items        []InvoiceItemResponse `json:"items"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Discount     decimal.Decimal       `json:"discount"`
	Tax          decimal.Decimal       `json:"tax"`
	Total        decimal.Decimal       `json:"total"`
	Currency     string                `json:"currency"`
	PaidAt       *time.Time            `json:"paidAt,omitempty"`
	CancelledAt  *time.Time            `json:"cancelledAt,omitempty"`
}

// ToInvoiceResponse converts a domain invoice for external callers.
func ToInvoiceResponse(inv *domain.Invoice, now time.Time) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitAmount.Amount,
			Total:       item.Total.Amount,
		}
	}
	return InvoiceResponse{
		InvoiceID:    inv.InvoiceID,
		OrgID:        inv.OrgID,
		ClientID:     inv.ClientID,
		Number:       inv.Number,
		Status:       string(inv.Status),
		Overdue:      inv.IsOverdue(now),
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		BillingMonth: inv.BillingMonth,
		Items:        items,
		Subtotal:     inv.Subtotal.Amount,
		Discount:     inv.Discount.Amount,
		Tax:          inv.Tax.Amount,
		Total:        inv.Total.Amount,
		Currency:     inv.Total.Currency,
		PaidAt:       inv.PaidAt,
		CancelledAt:  inv.CancelledAt,
	}
}
