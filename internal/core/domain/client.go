package domain

// Client is an agency customer within an org. PlanAmount is the monthly
// retainer the invoice generator bills; ContractValue and DefaultDueDays feed
// the installment plan generator. A client owns zero or many installments.
type Client struct {
	ClientID       string `json:"clientID"`
	OrgID          string `json:"orgID"`
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	PlanAmount     Money  `json:"planAmount"`
	ContractValue  Money  `json:"contractValue"`
	DefaultDueDays []int  `json:"defaultDueDays,omitempty"`
	AuditFields
}

// HasPositivePlan reports whether the client is billable by the monthly
// invoice generator.
func (c *Client) HasPositivePlan() bool {
	return c.PlanAmount.IsPositive()
}
