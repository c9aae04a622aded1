package mapping

import (
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	m := models.Payment{
		PaymentID:    d.PaymentID,
		OrgID:        d.OrgID,
		InvoiceID:    d.InvoiceID,
		Amount:       d.Amount.Amount,
		CurrencyCode: d.Amount.Currency,
		Method:       string(d.Method),
		Status:       string(d.Status),
		Reference:    d.Reference,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.RefundedAmount != nil {
		amount := d.RefundedAmount.Amount
		m.RefundedAmount = &amount
	}
	return m
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	d := domain.Payment{
		PaymentID:   m.PaymentID,
		OrgID:       m.OrgID,
		InvoiceID:   m.InvoiceID,
		Amount:      domain.Money{Amount: m.Amount, Currency: m.CurrencyCode},
		Method:      domain.PaymentMethod(m.Method),
		Status:      domain.PaymentStatus(m.Status),
		Reference:   m.Reference,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.RefundedAmount != nil {
		refunded := domain.Money{Amount: *m.RefundedAmount, Currency: m.CurrencyCode}
		d.RefundedAmount = &refunded
	}
	return d
}
