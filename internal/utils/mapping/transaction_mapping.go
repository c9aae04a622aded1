package mapping

import (
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OrgID:         d.OrgID,
		Type:          string(d.Type),
		Subtype:       string(d.Subtype),
		Amount:        d.Amount.Amount,
		CurrencyCode:  d.Amount.Currency,
		Status:        string(d.Status),
		Date:          d.Date,
		Description:   d.Description,
		InvoiceID:     d.InvoiceID,
		ClientID:      d.ClientID,
		CostItemID:    d.CostItemID,
		DaysLate:      d.DaysLate,
		DeletedAt:     d.DeletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OrgID:         m.OrgID,
		Type:          domain.TransactionType(m.Type),
		Subtype:       domain.TransactionSubtype(m.Subtype),
		Amount:        domain.Money{Amount: m.Amount, Currency: m.CurrencyCode},
		Status:        domain.TransactionStatus(m.Status),
		Date:          m.Date,
		Description:   m.Description,
		InvoiceID:     m.InvoiceID,
		ClientID:      m.ClientID,
		CostItemID:    m.CostItemID,
		DaysLate:      m.DaysLate,
		DeletedAt:     m.DeletedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
