package mapping

import (
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:       d.ClientID,
		OrgID:          d.OrgID,
		Name:           d.Name,
		Active:         d.Active,
		PlanAmount:     d.PlanAmount.Amount,
		ContractValue:  d.ContractValue.Amount,
		CurrencyCode:   d.PlanAmount.Currency,
		DefaultDueDays: d.DefaultDueDays,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:       m.ClientID,
		OrgID:          m.OrgID,
		Name:           m.Name,
		Active:         m.Active,
		PlanAmount:     domain.Money{Amount: m.PlanAmount, Currency: m.CurrencyCode},
		ContractValue:  domain.Money{Amount: m.ContractValue, Currency: m.CurrencyCode},
		DefaultDueDays: m.DefaultDueDays,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCostItem converts a domain CostItem to a model CostItem
func ToModelCostItem(d domain.CostItem) models.CostItem {
	return models.CostItem{
		CostItemID:   d.CostItemID,
		OrgID:        d.OrgID,
		Name:         d.Name,
		Amount:       d.Amount.Amount,
		CurrencyCode: d.Amount.Currency,
		Recurrence:   string(d.Recurrence),
		Active:       d.Active,
		ClientID:     d.ClientID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostItem converts a model CostItem to a domain CostItem
func ToDomainCostItem(m models.CostItem) domain.CostItem {
	return domain.CostItem{
		CostItemID:  m.CostItemID,
		OrgID:       m.OrgID,
		Name:        m.Name,
		Amount:      domain.Money{Amount: m.Amount, Currency: m.CurrencyCode},
		Recurrence:  domain.CostRecurrence(m.Recurrence),
		Active:      m.Active,
		ClientID:    m.ClientID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
