package models

import "github.com/shopspring/decimal"

// CostItem is the cost_items table row.
type CostItem struct {
	CostItemID   string          `json:"costItemID"` // Primary key (UUID)
	OrgID        string          `json:"orgID"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Recurrence   string          `json:"recurrence"` // MONTHLY / ONE_OFF
	Active       bool            `json:"active"`
	ClientID     *string         `json:"clientID"` // nullable FK -> clients
	AuditFields
}
