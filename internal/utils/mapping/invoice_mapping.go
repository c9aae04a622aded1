package mapping

import (
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice (items are
// mapped separately since they live in their own table).
func ToModelInvoice(d domain.Invoice) models.Invoice {
	var billingMonth *string
	if d.BillingMonth != "" {
		bm := d.BillingMonth
		billingMonth = &bm
	}
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		OrgID:         d.OrgID,
		ClientID:      d.ClientID,
		Number:        d.Number,
		Status:        string(d.Status),
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		BillingMonth:  billingMonth,
		Subtotal:      d.Subtotal.Amount,
		Discount:      d.Discount.Amount,
		Tax:           d.Tax.Amount,
		Total:         d.Total.Amount,
		CurrencyCode:  d.Total.Currency,
		PaidAt:        d.PaidAt,
		CancelledAt:   d.CancelledAt,
		CancelReason:  d.CancelReason,
		Notes:         d.Notes,
		InternalNotes: d.InternalNotes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToModelInvoiceItems converts a domain Invoice's items to model rows.
func ToModelInvoiceItems(d domain.Invoice) []models.InvoiceItem {
	items := make([]models.InvoiceItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.InvoiceItem{
			InvoiceID:   d.InvoiceID,
			Position:    i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitAmount.Amount,
			Total:       item.Total.Amount,
		}
	}
	return items
}

// ToDomainInvoice converts a model Invoice plus its item rows to a domain Invoice.
func ToDomainInvoice(m models.Invoice, items []models.InvoiceItem) domain.Invoice {
	domainItems := make([]domain.InvoiceItem, len(items))
	for i, item := range items {
		domainItems[i] = domain.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitAmount:  domain.Money{Amount: item.UnitAmount, Currency: m.CurrencyCode},
			Total:       domain.Money{Amount: item.Total, Currency: m.CurrencyCode},
		}
	}
	billingMonth := ""
	if m.BillingMonth != nil {
		billingMonth = *m.BillingMonth
	}
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		OrgID:         m.OrgID,
		ClientID:      m.ClientID,
		Number:        m.Number,
		Status:        domain.InvoiceStatus(m.Status),
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		BillingMonth:  billingMonth,
		Items:         domainItems,
		Subtotal:      domain.Money{Amount: m.Subtotal, Currency: m.CurrencyCode},
		Discount:      domain.Money{Amount: m.Discount, Currency: m.CurrencyCode},
		Tax:           domain.Money{Amount: m.Tax, Currency: m.CurrencyCode},
		Total:         domain.Money{Amount: m.Total, Currency: m.CurrencyCode},
		PaidAt:        m.PaidAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
		Notes:         m.Notes,
		InternalNotes: m.InternalNotes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
