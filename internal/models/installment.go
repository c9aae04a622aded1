package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is the installments table row, keyed by (client_id, number).
type Installment struct {
	ClientID     string          `json:"clientID"` // FK -> clients.client_id
	Number       int             `json:"number"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	DueDate      time.Time       `json:"dueDate"`
	Status       string          `json:"status"` // PENDING / CONFIRMED / LATE
	Notes        string          `json:"notes"`
	PaidAt       *time.Time      `json:"paidAt"`
	AuditFields
}
