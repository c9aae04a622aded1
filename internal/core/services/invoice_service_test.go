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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoices *MockInvoiceRepository
	mockTxns     *MockTransactionRepository
	mockClients  *MockClientRepository
	service      portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoices = new(MockInvoiceRepository)
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockClients = new(MockClientRepository)
	coordinator := services.NewAtomicCoordinator(newFakeUnitOfWork(suite.mockInvoices, suite.mockTxns, nil, nil))
	suite.service = services.NewInvoiceService(suite.mockInvoices, suite.mockClients, coordinator)
}

func (suite *InvoiceServiceTestSuite) createRequest(clientID string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID:  clientID,
		Number:    "INV-2025-06-001",
		Status:    "OPEN",
		IssueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Currency:  "BRL",
		Items: []dto.InvoiceItemInput{
			{Description: "Social media management", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.RequireFromString("1200.00")},
			{Description: "Extra campaign", Quantity: decimal.NewFromInt(2), UnitAmount: decimal.RequireFromString("150.00")},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TotalsFromItems() {
	ctx := context.Background()
	orgID := uuid.NewString()
	clientID := uuid.NewString()
	client := &domain.Client{ClientID: clientID, OrgID: orgID, Name: "Acme", Active: true}

	suite.mockClients.On("FindClientByID", ctx, orgID, clientID).Return(client, nil).Once()
	suite.mockInvoices.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceOpen &&
			inv.Total.Equal(mustTestMoney(suite.T(), "1500.00", "BRL")) &&
			len(inv.Items) == 2
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, orgID, suite.createRequest(clientID), uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(clientID, invoice.ClientID)
	suite.True(invoice.Subtotal.Equal(mustTestMoney(suite.T(), "1500.00", "BRL")))
	suite.mockInvoices.AssertExpectations(suite.T())
	suite.mockTxns.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_WithPendingLedgerEntry() {
	ctx := context.Background()
	orgID := uuid.NewString()
	clientID := uuid.NewString()
	client := &domain.Client{ClientID: clientID, OrgID: orgID, Name: "Acme", Active: true}
	req := suite.createRequest(clientID)
	req.CreateTransaction = true

	suite.mockClients.On("FindClientByID", ctx, orgID, clientID).Return(client, nil).Once()
	suite.mockInvoices.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.TransactionPending &&
			txn.Type == domain.Income &&
			txn.Subtype == domain.SubtypeInvoicePayment &&
			txn.Amount.Equal(mustTestMoney(suite.T(), "1500.00", "BRL")) &&
			txn.InvoiceID != nil
	})).Return(nil).Once()

	_, err := suite.service.CreateInvoice(ctx, orgID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownClientRejected() {
	ctx := context.Background()
	orgID := uuid.NewString()
	clientID := uuid.NewString()

	suite.mockClients.On("FindClientByID", ctx, orgID, clientID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInvoice(ctx, orgID, suite.createRequest(clientID), uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoices.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_MissingItemsRejected() {
	ctx := context.Background()
	req := suite.createRequest(uuid.NewString())
	req.Items = nil

	_, err := suite.service.CreateInvoice(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockClients.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_RequiresReason() {
	ctx := context.Background()

	_, err := suite.service.CancelInvoice(ctx, uuid.NewString(), uuid.NewString(), dto.CancelInvoiceRequest{}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoices.AssertNotCalled(suite.T(), "FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
