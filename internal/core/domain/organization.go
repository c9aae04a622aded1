package domain

// Organization is the tenant boundary: every client, invoice, transaction and
// cost item belongs to exactly one org, and no operation crosses orgs.
// Authorization is out of scope here; the acting user arrives as a plain ID
// and is only recorded in audit metadata.
type Organization struct {
	OrgID           string `json:"orgID"`
	Name            string `json:"name"`
	DefaultCurrency string `json:"defaultCurrency"` // e.g. "BRL"
	IsActive        bool   `json:"isActive"`
	AuditFields
}
