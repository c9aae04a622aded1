package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_management_app/internal/core/services"
)

func mustTestMoney(t interface{ Fatalf(string, ...interface{}) }, amount string, currency string) domain.Money {
	m, err := domain.NewMoneyFromString(amount, currency)
	if err != nil {
		t.Fatalf("building money %s %s: %v", amount, currency, err)
	}
	return m
}

func openInvoice(t interface{ Fatalf(string, ...interface{}) }, orgID string, dueDate time.Time) domain.Invoice {
	item, err := domain.NewInvoiceItem("Monthly retainer 2025-06", decimal.NewFromInt(1), mustTestMoney(t, "1500.00", "BRL"))
	if err != nil {
		t.Fatalf("building invoice item: %v", err)
	}
	inv, err := domain.NewInvoice(
		uuid.NewString(), orgID, uuid.NewString(), "INV-2025-06-TEST",
		domain.InvoiceOpen, dueDate.AddDate(0, 0, -10), dueDate,
		[]domain.InvoiceItem{item},
		domain.ZeroMoney("BRL"), domain.ZeroMoney("BRL"),
	)
	if err != nil {
		t.Fatalf("building invoice: %v", err)
	}
	return inv
}

type CoordinatorTestSuite struct {
	suite.Suite
	mockInvoices  *MockInvoiceRepository
	mockTxns      *MockTransactionRepository
	mockCostItems *MockCostItemRepository
	coordinator   *services.AtomicCoordinator
}

func (suite *CoordinatorTestSuite) SetupTest() {
	suite.mockInvoices = new(MockInvoiceRepository)
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockCostItems = new(MockCostItemRepository)
	uow := newFakeUnitOfWork(suite.mockInvoices, suite.mockTxns, suite.mockCostItems, nil)
	suite.coordinator = services.NewAtomicCoordinator(uow)
}

func (suite *CoordinatorTestSuite) TestApproveInvoicePayment_Success() {
	ctx := context.Background()
	orgID := uuid.NewString()
	dueDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	invoice := openInvoice(suite.T(), orgID, dueDate)
	paidAt := dueDate.AddDate(0, 0, 3)

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	updated, txn, err := suite.coordinator.ApproveInvoicePayment(ctx, orgID, invoice.InvoiceID, &paidAt, "wire received", uuid.NewString(), time.Now())

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Require().NotNil(txn)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.Require().NotNil(updated.PaidAt)
	suite.True(updated.PaidAt.Equal(paidAt))
	suite.Equal(domain.TransactionConfirmed, txn.Status)
	suite.Equal(domain.Income, txn.Type)
	suite.Equal(domain.SubtypeInvoicePayment, txn.Subtype)
	suite.True(txn.Amount.Equal(invoice.Total))
	suite.Require().NotNil(txn.DaysLate)
	suite.Equal(3, *txn.DaysLate)
	suite.mockInvoices.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *CoordinatorTestSuite) TestApproveInvoicePayment_DefaultsPaidAtToDueDate() {
	ctx := context.Background()
	orgID := uuid.NewString()
	dueDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	invoice := openInvoice(suite.T(), orgID, dueDate)

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	updated, txn, err := suite.coordinator.ApproveInvoicePayment(ctx, orgID, invoice.InvoiceID, nil, "", uuid.NewString(), time.Now())

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.PaidAt)
	suite.True(updated.PaidAt.Equal(dueDate))
	suite.Require().NotNil(txn.DaysLate)
	suite.Equal(0, *txn.DaysLate)
}

// The invoice update and the ledger entry must land together. When the
// second write fails, the unit aborts and the caller sees neither effect.
func (suite *CoordinatorTestSuite) TestApproveInvoicePayment_SecondWriteFails() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(errors.New("connection reset")).Once()

	updated, txn, err := suite.coordinator.ApproveInvoicePayment(ctx, orgID, invoice.InvoiceID, nil, "", uuid.NewString(), time.Now())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.Nil(txn)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *CoordinatorTestSuite) TestApproveInvoicePayment_AlreadyPaid() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	paidAt := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(invoice.ApprovePayment(&paidAt, ""))

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, _, err := suite.coordinator.ApproveInvoicePayment(ctx, orgID, invoice.InvoiceID, nil, "", uuid.NewString(), time.Now())

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyPaid)
	suite.mockInvoices.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything)
	suite.mockTxns.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *CoordinatorTestSuite) TestApproveInvoicePayment_DraftRejected() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	invoice.Status = domain.InvoiceDraft

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, _, err := suite.coordinator.ApproveInvoicePayment(ctx, orgID, invoice.InvoiceID, nil, "", uuid.NewString(), time.Now())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CoordinatorTestSuite) TestCancelInvoice_SweepsPendingTransactions() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	pending := make([]domain.Transaction, 0, 2)
	for i := 0; i < 2; i++ {
		txn, err := domain.NewTransaction(
			uuid.NewString(), orgID,
			domain.Income, domain.SubtypeInvoicePayment,
			mustTestMoney(suite.T(), "750.00", "BRL"), time.Now(),
			"expected payment",
		)
		suite.Require().NoError(err)
		txn.InvoiceID = &invoice.InvoiceID
		pending = append(pending, txn)
	}

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockTxns.On("FindPendingByInvoiceID", ctx, orgID, invoice.InvoiceID).Return(pending, nil).Once()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.TransactionCancelled
	})).Return(nil).Twice()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceCancelled
	})).Return(nil).Once()

	updated, err := suite.coordinator.CancelInvoice(ctx, orgID, invoice.InvoiceID, "client churned", uuid.NewString(), time.Now())

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, updated.Status)
	suite.Equal("client churned", updated.CancelReason)
	suite.mockTxns.AssertExpectations(suite.T())
	suite.mockInvoices.AssertExpectations(suite.T())
}

func (suite *CoordinatorTestSuite) TestCancelInvoice_PaidRejected() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	paidAt := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(invoice.ApprovePayment(&paidAt, ""))

	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.coordinator.CancelInvoice(ctx, orgID, invoice.InvoiceID, "late cancel", uuid.NewString(), time.Now())

	suite.Require().ErrorIs(err, apperrors.ErrCannotCancelPaid)
	suite.mockInvoices.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything)
}

func (suite *CoordinatorTestSuite) TestCreateMonthlyInvoice_DuplicateMonth() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	invoice.BillingMonth = "2025-06"

	suite.mockInvoices.On("ExistsForClientMonth", ctx, orgID, invoice.ClientID, "2025-06").Return(true, nil).Once()

	err := suite.coordinator.CreateMonthlyInvoice(ctx, invoice)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockInvoices.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *CoordinatorTestSuite) TestMaterializeMonthlyCosts_SkipsAlreadyMaterialized() {
	ctx := context.Background()
	orgID := uuid.NewString()
	userID := uuid.NewString()
	clientID := uuid.NewString()

	items := []domain.CostItem{
		{
			CostItemID: uuid.NewString(), OrgID: orgID, Name: "Design tool seats",
			Amount: mustTestMoney(suite.T(), "230.00", "BRL"), Recurrence: domain.RecurrenceMonthly, Active: true,
		},
		{
			CostItemID: uuid.NewString(), OrgID: orgID, Name: "Ad platform fee",
			Amount: mustTestMoney(suite.T(), "99.90", "BRL"), Recurrence: domain.RecurrenceMonthly, Active: true,
			ClientID: &clientID,
		},
	}
	done := map[portsrepo.MaterializedCostKey]bool{
		{CostItemID: items[0].CostItemID}: true,
	}

	suite.mockCostItems.On("ListActiveMonthlyCostItems", ctx, orgID).Return(items, nil).Once()
	suite.mockTxns.On("FindMaterializedCostKeys", ctx, orgID, "2025-06").Return(done, nil).Once()
	suite.mockTxns.On("SaveTransactions", ctx, mock.MatchedBy(func(batch []domain.Transaction) bool {
		if len(batch) != 1 {
			return false
		}
		txn := batch[0]
		return txn.Type == domain.Expense &&
			txn.Subtype == domain.SubtypeRecurringCost &&
			txn.Status == domain.TransactionPending &&
			txn.CostItemID != nil && *txn.CostItemID == items[1].CostItemID &&
			txn.ClientID != nil && *txn.ClientID == clientID
	})).Return(nil).Once()

	created, skipped, err := suite.coordinator.MaterializeMonthlyCosts(ctx, orgID, "2025-06", userID, time.Now())

	suite.Require().NoError(err)
	suite.Equal(1, created)
	suite.Equal(1, skipped)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *CoordinatorTestSuite) TestMaterializeMonthlyCosts_BadMonth() {
	_, _, err := suite.coordinator.MaterializeMonthlyCosts(context.Background(), uuid.NewString(), "June 2025", uuid.NewString(), time.Now())
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}
