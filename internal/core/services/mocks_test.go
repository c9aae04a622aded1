package services_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
)

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByOrg(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, orgID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Invoice), token, args.Error(2)
}

func (m *MockInvoiceRepository) ExistsForClientMonth(ctx context.Context, orgID string, clientID string, month string) (bool, error) {
	args := m.Called(ctx, orgID, clientID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, orgID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByOrg(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, orgID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsForBalance(ctx context.Context, orgID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindPendingByInvoiceID(ctx context.Context, orgID string, invoiceID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindMaterializedCostKeys(ctx context.Context, orgID string, month string) (map[portsrepo.MaterializedCostKey]bool, error) {
	args := m.Called(ctx, orgID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[portsrepo.MaterializedCostKey]bool), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, orgID string, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, orgID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, orgID string, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, orgID string, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, orgID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListActiveClients(ctx context.Context, orgID string) ([]domain.Client, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// MockInstallmentRepository is a mock type for the InstallmentRepositoryFacade interface
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) ListInstallmentsByClient(ctx context.Context, clientID string) ([]domain.Installment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ReplaceInstallmentsForClient(ctx context.Context, clientID string, installments []domain.Installment) error {
	args := m.Called(ctx, clientID, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) UpdateInstallment(ctx context.Context, installment domain.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

// MockCostItemRepository is a mock type for the CostItemRepositoryFacade interface
type MockCostItemRepository struct {
	mock.Mock
}

func (m *MockCostItemRepository) ListActiveMonthlyCostItems(ctx context.Context, orgID string) ([]domain.CostItem, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostItem), args.Error(1)
}

// fakeUnitOfWork runs the closure against the given repositories with no real
// transaction. An error from the closure stands in for a rollback: the caller
// must treat every effect inside the unit as undone.
type fakeUnitOfWork struct {
	repos portsrepo.TxRepositories
}

func newFakeUnitOfWork(invoices *MockInvoiceRepository, txns *MockTransactionRepository, costItems *MockCostItemRepository, installments *MockInstallmentRepository) *fakeUnitOfWork {
	return &fakeUnitOfWork{repos: portsrepo.TxRepositories{
		Invoices:     invoices,
		Transactions: txns,
		CostItems:    costItems,
		Installments: installments,
	}}
}

func (f *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	return fn(ctx, f.repos)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
