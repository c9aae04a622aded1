package dto

import "github.com/shopspring/decimal"

// CreatePaymentRequest registers a pending payment against an invoice.
type CreatePaymentRequest struct {
	InvoiceID string          `json:"invoiceID" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Currency  string          `json:"currency" validate:"required,len=3,uppercase"`
	Method    string          `json:"method" validate:"required,oneof=PIX BOLETO CARD TRANSFER"`
	Notes     string          `json:"notes"`
}

// ProcessPaymentRequest moves a pending payment to PROCESSED.
type ProcessPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// RefundPaymentRequest refunds a verified payment, fully when Amount is nil.
type RefundPaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}
