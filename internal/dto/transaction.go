package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest registers a manual ledger entry in PENDING state.
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Subtype     string          `json:"subtype" validate:"omitempty,oneof=INVOICE_PAYMENT RECURRING_COST MANUAL"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"required,len=3,uppercase"`
	Date        time.Time       `json:"date" validate:"required"`
	Description string          `json:"description"`
	ClientID    *string         `json:"clientID"`
	CostItemID  *string         `json:"costItemID"`
}

// UpdateTransactionDescriptionRequest edits a pending entry's description.
type UpdateTransactionDescriptionRequest struct {
	Description string `json:"description" validate:"required"`
}
