package repositories

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client scoped to the org.
	FindClientByID(ctx context.Context, orgID string, clientID string) (*domain.Client, error)

	// ListActiveClients retrieves the org's active clients ordered by name.
	// The monthly invoice generator iterates this list.
	ListActiveClients(ctx context.Context, orgID string) ([]domain.Client, error)
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
}

// InstallmentReader defines read operations for installment data
type InstallmentReader interface {
	// ListInstallmentsByClient retrieves a client's plan ordered by number.
	ListInstallmentsByClient(ctx context.Context, clientID string) ([]domain.Installment, error)
}

// InstallmentWriter defines write operations for installment data
type InstallmentWriter interface {
	// ReplaceInstallmentsForClient deletes the client's previous plan and
	// inserts the new one. Editing a plan always replaces it wholesale.
	ReplaceInstallmentsForClient(ctx context.Context, clientID string, installments []domain.Installment) error

	// UpdateInstallment persists a single installment's state transition.
	UpdateInstallment(ctx context.Context, installment domain.Installment) error
}

// InstallmentRepositoryFacade combines all installment repository interfaces
type InstallmentRepositoryFacade interface {
	InstallmentReader
	InstallmentWriter
}

// CostItemReader defines read operations for recurring cost items
type CostItemReader interface {
	// ListActiveMonthlyCostItems retrieves the org's active MONTHLY cost
	// items, the source records for materialization.
	ListActiveMonthlyCostItems(ctx context.Context, orgID string) ([]domain.CostItem, error)
}

// CostItemRepositoryFacade combines all cost-item repository interfaces
type CostItemRepositoryFacade interface {
	CostItemReader
}
