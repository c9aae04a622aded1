package models

import "github.com/shopspring/decimal"

// Client is the clients table row.
type Client struct {
	ClientID       string          `json:"clientID"` // Primary key (UUID)
	OrgID          string          `json:"orgID"`
	Name           string          `json:"name"`
	Active         bool            `json:"active"`
	PlanAmount     decimal.Decimal `json:"planAmount"`
	ContractValue  decimal.Decimal `json:"contractValue"`
	CurrencyCode   string          `json:"currencyCode"`
	DefaultDueDays []int           `json:"defaultDueDays"`
	AuditFields
}
