package services

import (
	"context"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	"github.com/agencydesk/agency_management_app/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger entries
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific ledger entry.
	GetTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of the org's entries.
	ListTransactions(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for ledger entries
type TransactionWriterSvc interface {
	// CreateTransaction registers a manual PENDING ledger entry.
	CreateTransaction(ctx context.Context, orgID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// ConfirmTransaction moves a pending entry to CONFIRMED.
	ConfirmTransaction(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error)

	// CancelTransaction moves a pending entry to CANCELLED.
	CancelTransaction(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error)

	// UpdateTransactionDescription edits a not-yet-confirmed entry.
	UpdateTransactionDescription(ctx context.Context, orgID string, transactionID string, req dto.UpdateTransactionDescriptionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes an entry; the row is kept but excluded
	// from balances.
	DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string) error
}

// TransactionCalculatorSvc defines balance computations over the ledger
type TransactionCalculatorSvc interface {
	// CalculateOrgBalance returns the org's net balance via the canonical
	// balance computation.
	CalculateOrgBalance(ctx context.Context, orgID string, fallbackCurrency string) (domain.Money, error)
}

// TransactionSvcFacade combines all ledger-entry service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionCalculatorSvc
}
