package models

import "github.com/shopspring/decimal"

// Payment is the payments table row.
type Payment struct {
	PaymentID      string           `json:"paymentID"` // Primary key (UUID)
	OrgID          string           `json:"orgID"`
	InvoiceID      string           `json:"invoiceID"` // FK -> invoices.invoice_id
	Amount         decimal.Decimal  `json:"amount"`
	CurrencyCode   string           `json:"currencyCode"`
	Method         string           `json:"method"`
	Status         string           `json:"status"` // PENDING / PROCESSED / VERIFIED / REFUNDED
	Reference      string           `json:"reference"`
	Notes          string           `json:"notes"`
	RefundedAmount *decimal.Decimal `json:"refundedAmount"`
	AuditFields
}
