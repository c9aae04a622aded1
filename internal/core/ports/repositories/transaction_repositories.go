package repositories

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
)

// MaterializedCostKey identifies one already-materialized recurring cost for
// a month: the cost item and the client it was attributed to (empty ClientID
// for org-level costs).
type MaterializedCostKey struct {
	CostItemID string
	ClientID   string
}

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a ledger entry scoped to the org.
	FindTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByOrg retrieves a paginated list of non-deleted ledger
	// entries using token-based pagination.
	ListTransactionsByOrg(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsForBalance retrieves every non-deleted entry of the org
	// for the canonical balance computation.
	ListTransactionsForBalance(ctx context.Context, orgID string) ([]domain.Transaction, error)

	// FindPendingByInvoiceID retrieves the org's PENDING entries referencing
	// an invoice, so a cancellation can sweep them in the same atomic unit.
	FindPendingByInvoiceID(ctx context.Context, orgID string, invoiceID string) ([]domain.Transaction, error)

	// FindMaterializedCostKeys reports which (cost item, client) pairs already
	// have a RECURRING_COST entry for the month.
	FindMaterializedCostKeys(ctx context.Context, orgID string, month string) (map[MaterializedCostKey]bool, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// SaveTransaction inserts one ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions inserts a batch of ledger entries.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction persists status, description and soft-delete changes.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all ledger-entry repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
