package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row. Amount is a positive magnitude;
// the sign convention lives in TransactionType.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	OrgID         string          `json:"orgID"`         // FK -> organizations.org_id (Not Null)
	Type          string          `json:"type"`          // INCOME or EXPENSE
	Subtype       string          `json:"subtype"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Status        string          `json:"status"` // PENDING / CONFIRMED / CANCELLED
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	InvoiceID     *string         `json:"invoiceID"`  // FK -> invoices, nullable
	ClientID      *string         `json:"clientID"`   // FK -> clients, nullable
	CostItemID    *string         `json:"costItemID"` // FK -> cost_items, nullable
	DaysLate      *int            `json:"daysLate"`
	DeletedAt     *time.Time      `json:"deletedAt"`
	AuditFields
}
