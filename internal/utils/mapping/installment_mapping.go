package mapping

import (
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/models"
)

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		ClientID:     d.ClientID,
		Number:       d.Number,
		Amount:       d.Amount.Amount,
		CurrencyCode: d.Amount.Currency,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		Notes:        d.Notes,
		PaidAt:       d.PaidAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		ClientID:    m.ClientID,
		Number:      m.Number,
		Amount:      domain.Money{Amount: m.Amount, Currency: m.CurrencyCode},
		DueDate:     m.DueDate,
		Status:      domain.InstallmentStatus(m.Status),
		Notes:       m.Notes,
		PaidAt:      m.PaidAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts model Installments to domain Installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}
