package domain

// CostRecurrence is how often a recurring cost repeats. Only monthly costs
// are materialized today.
type CostRecurrence string

const (
	RecurrenceMonthly CostRecurrence = "MONTHLY"
	RecurrenceOneOff  CostRecurrence = "ONE_OFF"
)

// CostItem is a recurring or one-off obligation (subscription, rent, a
// client-specific tool) that the materializer turns into dated EXPENSE
// ledger entries.
type CostItem struct {
	CostItemID string         `json:"costItemID"`
	OrgID      string         `json:"orgID"`
	Name       string         `json:"name"`
	Amount     Money          `json:"amount"`
	Recurrence CostRecurrence `json:"recurrence"`
	Active     bool           `json:"active"`
	ClientID   *string        `json:"clientID,omitempty"` // set when the cost is attributable to one client
	AuditFields
}
