package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row. A partial unique index on
// (org_id, client_id, billing_month) backs the monthly generator's
// idempotency.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary key (UUID)
	OrgID         string          `json:"orgID"`
	ClientID      string          `json:"clientID"`
	Number        string          `json:"number"`
	Status        string          `json:"status"` // DRAFT / OPEN / PAID / CANCELLED
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	BillingMonth  *string         `json:"billingMonth"` // "YYYY-MM", null for ad-hoc invoices
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	CurrencyCode  string          `json:"currencyCode"`
	PaidAt        *time.Time      `json:"paidAt"`
	CancelledAt   *time.Time      `json:"cancelledAt"`
	CancelReason  string          `json:"cancelReason"`
	Notes         string          `json:"notes"`
	InternalNotes string          `json:"internalNotes"`
	AuditFields
}

// InvoiceItem is the invoice_items table row; items live and die with their
// invoice.
type InvoiceItem struct {
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices.invoice_id
	Position    int             `json:"position"`  // 1-based order within the invoice
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unitAmount"`
	Total       decimal.Decimal `json:"total"`
}
