package dto

// Skip reasons reported by the monthly invoice generator. Every client in the
// org appears in the details exactly once with at most one of these.
const (
	SkipReasonAlreadyExists = "already-exists"
	SkipReasonNoPlan        = "no-plan"
)

// GenerateMonthlyInvoicesParams drives one generator run. Month is a calendar
// month in "YYYY-MM" form. DryRun reports what would be created without
// persisting anything.
type GenerateMonthlyInvoicesParams struct {
	OrgID  string `json:"orgID" validate:"required"`
	Month  string `json:"month" validate:"required,len=7"`
	DryRun bool   `json:"dryRun"`
}

// ClientOutcome accounts for one client of the run: either an invoice ID or a
// reason why nothing was created.
type ClientOutcome struct {
	ClientID  string  `json:"clientID"`
	InvoiceID *string `json:"invoiceID,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// GenerateMonthlyInvoicesResult summarises a generator run.
type GenerateMonthlyInvoicesResult struct {
	Created int             `json:"created"`
	Skipped int             `json:"skipped"`
	Details []ClientOutcome `json:"details"`
}

// MaterializeMonthlyCostsParams drives one recurring-cost materialization run
// for a calendar month.
type MaterializeMonthlyCostsParams struct {
	OrgID string `json:"orgID" validate:"required"`
	Month string `json:"month" validate:"required,len=7"`
}

// MaterializeMonthlyCostsResult summarises a materialization run.
type MaterializeMonthlyCostsResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
