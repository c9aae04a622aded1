package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/core/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPayments *MockPaymentRepository
	mockInvoices *MockInvoiceRepository
	mockTxns     *MockTransactionRepository
	service      portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPayments = new(MockPaymentRepository)
	suite.mockInvoices = new(MockInvoiceRepository)
	suite.mockTxns = new(MockTransactionRepository)
	uow := newFakeUnitOfWork(suite.mockInvoices, suite.mockTxns, nil, nil)
	coordinator := services.NewAtomicCoordinator(uow)
	suite.service = services.NewPaymentService(suite.mockPayments, suite.mockInvoices, coordinator, discardLogger())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Success() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	req := dto.CreatePaymentRequest{
		InvoiceID: invoice.InvoiceID,
		Amount:    decimal.RequireFromString("1500.00"),
		Currency:  "BRL",
		Method:    "PIX",
	}

	suite.mockInvoices.On("FindInvoiceByID", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockPayments.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentPending && p.Method == domain.MethodPix && p.InvoiceID == invoice.InvoiceID
	})).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, orgID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, payment.Status)
	suite.NotEmpty(payment.PaymentID)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CancelledInvoiceRejected() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(invoice.Cancel("scope cut", time.Now()))

	suite.mockInvoices.On("FindInvoiceByID", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()

	_, err := suite.service.CreatePayment(ctx, orgID, dto.CreatePaymentRequest{
		InvoiceID: invoice.InvoiceID,
		Amount:    decimal.RequireFromString("1500.00"),
		Currency:  "BRL",
		Method:    "PIX",
	}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrCannotPayCancelled)
	suite.mockPayments.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestProcessPayment_RequiresReference() {
	_, err := suite.service.ProcessPayment(context.Background(), uuid.NewString(), uuid.NewString(), dto.ProcessPaymentRequest{}, uuid.NewString())
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestProcessPayment_Success() {
	ctx := context.Background()
	orgID := uuid.NewString()
	payment, err := domain.NewPayment(uuid.NewString(), orgID, uuid.NewString(), mustTestMoney(suite.T(), "1500.00", "BRL"), domain.MethodBoleto)
	suite.Require().NoError(err)

	suite.mockPayments.On("FindPaymentByID", ctx, orgID, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockPayments.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentProcessed && p.Reference == "BOL-123"
	})).Return(nil).Once()

	processed, err := suite.service.ProcessPayment(ctx, orgID, payment.PaymentID, dto.ProcessPaymentRequest{Reference: "BOL-123"}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentProcessed, processed.Status)
	suite.mockPayments.AssertExpectations(suite.T())
}

// Verifying a payment that covers the invoice total approves the invoice in
// the same call: payment VERIFIED, invoice PAID, income entry recorded.
func (suite *PaymentServiceTestSuite) TestVerifyPayment_CoveringAmountApprovesInvoice() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	payment, err := domain.NewPayment(uuid.NewString(), orgID, invoice.InvoiceID, invoice.Total, domain.MethodPix)
	suite.Require().NoError(err)
	suite.Require().NoError(payment.MarkProcessed("PIX-789"))

	suite.mockPayments.On("FindPaymentByID", ctx, orgID, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockPayments.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentVerified
	})).Return(nil).Once()
	suite.mockInvoices.On("FindInvoiceByID", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoices.On("FindInvoiceByIDForUpdate", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockInvoices.On("UpdateInvoiceStatus", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePaid
	})).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.Income && txn.Status == domain.TransactionConfirmed
	})).Return(nil).Once()

	verified, err := suite.service.VerifyPayment(ctx, orgID, payment.PaymentID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentVerified, verified.Status)
	suite.mockInvoices.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_PartialAmountLeavesInvoiceOpen() {
	ctx := context.Background()
	orgID := uuid.NewString()
	invoice := openInvoice(suite.T(), orgID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	payment, err := domain.NewPayment(uuid.NewString(), orgID, invoice.InvoiceID, mustTestMoney(suite.T(), "500.00", "BRL"), domain.MethodPix)
	suite.Require().NoError(err)
	suite.Require().NoError(payment.MarkProcessed("PIX-790"))

	suite.mockPayments.On("FindPaymentByID", ctx, orgID, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockPayments.On("UpdatePayment", ctx, mock.Anything).Return(nil).Once()
	suite.mockInvoices.On("FindInvoiceByID", ctx, orgID, invoice.InvoiceID).Return(&invoice, nil).Once()

	verified, err := suite.service.VerifyPayment(ctx, orgID, payment.PaymentID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentVerified, verified.Status)
	suite.mockInvoices.AssertNotCalled(suite.T(), "FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxns.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_SkippedStateRejected() {
	ctx := context.Background()
	orgID := uuid.NewString()
	payment, err := domain.NewPayment(uuid.NewString(), orgID, uuid.NewString(), mustTestMoney(suite.T(), "500.00", "BRL"), domain.MethodPix)
	suite.Require().NoError(err)
	// still PENDING: verification without processing must fail

	suite.mockPayments.On("FindPaymentByID", ctx, orgID, payment.PaymentID).Return(&payment, nil).Once()

	_, err = suite.service.VerifyPayment(ctx, orgID, payment.PaymentID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRefundPayment_PartialWithinCap() {
	ctx := context.Background()
	orgID := uuid.NewString()
	payment, err := domain.NewPayment(uuid.NewString(), orgID, uuid.NewString(), mustTestMoney(suite.T(), "1500.00", "BRL"), domain.MethodCard)
	suite.Require().NoError(err)
	suite.Require().NoError(payment.MarkProcessed("CARD-1"))
	suite.Require().NoError(payment.Verify())
	refund := decimal.RequireFromString("400.00")

	suite.mockPayments.On("FindPaymentByID", ctx, orgID, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockPayments.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentRefunded &&
			p.RefundedAmount != nil && p.RefundedAmount.Amount.Equal(refund)
	})).Return(nil).Once()

	refunded, err := suite.service.RefundPayment(ctx, orgID, payment.PaymentID, dto.RefundPaymentRequest{Amount: &refund}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRefunded, refunded.Status)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRefundPayment_OverCapRejected() {
	ctx := context.Background()
	orgID := uuid.NewString()
	payment, err := domain.NewPayment(uuid.NewString(), orgID, uuid.NewString(), mustTestMoney(suite.T(), "1500.00", "BRL"), domain.MethodCard)
	suite.Require().NoError(err)
	suite.Require().NoError(payment.MarkProcessed("CARD-2"))
	suite.Require().NoError(payment.Verify())
	refund := decimal.RequireFromString("2000.00")

	suite.mockPayments.On("FindPaymentByID", ctx, orgID, payment.PaymentID).Return(&payment, nil).Once()

	_, err = suite.service.RefundPayment(ctx, orgID, payment.PaymentID, dto.RefundPaymentRequest{Amount: &refund}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockPayments.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
