package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
	"github.com/agencydesk/agency_management_app/internal/utils/validation"
)

// transactionService provides ledger-entry operations. Single-record writes
// go straight to the repository; everything multi-record lives in the
// coordinator, not here.
type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, orgID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	amount, err := domain.NewMoney(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	subtype := domain.TransactionSubtype(req.Subtype)
	if subtype == "" {
		subtype = domain.SubtypeManual
	}
	txn, err := domain.NewTransaction(uuid.NewString(), orgID, domain.TransactionType(req.Type), subtype, amount, req.Date, req.Description)
	if err != nil {
		return nil, err
	}
	txn.ClientID = req.ClientID
	txn.CostItemID = req.CostItemID
	txn.AuditFields = domain.NewAuditFields(creatorUserID, time.Now())

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, orgID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return s.txnRepo.ListTransactionsByOrg(ctx, orgID, limit, nextToken)
}

// mutate loads the entry, applies the transition and persists the result.
// Invariant violations surface as-is; they are never corrected here.
func (s *transactionService) mutate(ctx context.Context, orgID, transactionID, userID string, apply func(*domain.Transaction) error) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, orgID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := apply(txn); err != nil {
		return nil, err
	}
	txn.Touch(userID, time.Now())
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) ConfirmTransaction(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error) {
	return s.mutate(ctx, orgID, transactionID, userID, func(txn *domain.Transaction) error {
		return txn.Confirm()
	})
}

func (s *transactionService) CancelTransaction(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error) {
	return s.mutate(ctx, orgID, transactionID, userID, func(txn *domain.Transaction) error {
		return txn.Cancel()
	})
}

func (s *transactionService) UpdateTransactionDescription(ctx context.Context, orgID string, transactionID string, req dto.UpdateTransactionDescriptionRequest, userID string) (*domain.Transaction, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.mutate(ctx, orgID, transactionID, userID, func(txn *domain.Transaction) error {
		return txn.UpdateDescription(req.Description)
	})
}

func (s *transactionService) DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string) error {
	_, err := s.mutate(ctx, orgID, transactionID, userID, func(txn *domain.Transaction) error {
		txn.SoftDelete(time.Now())
		return nil
	})
	return err
}

// CalculateOrgBalance reports the org's net balance. It always goes through
// domain.CalculateBalance so there is exactly one summation rule.
func (s *transactionService) CalculateOrgBalance(ctx context.Context, orgID string, fallbackCurrency string) (domain.Money, error) {
	txns, err := s.txnRepo.ListTransactionsForBalance(ctx, orgID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to load transactions for balance: %w", err)
	}
	return domain.CalculateBalance(txns, fallbackCurrency)
}
