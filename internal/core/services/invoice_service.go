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

// invoiceService provides invoice lifecycle operations. Reads go to the
// repository directly; every transition with more than one record involved
// goes through the coordinator.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	coordinator *AtomicCoordinator
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, coordinator *AtomicCoordinator) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		coordinator: coordinator,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, orgID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	return s.invoiceRepo.ListInvoicesByOrg(ctx, orgID, limit, nextToken)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	// The client must exist in this org before we bill it.
	client, err := s.clientRepo.FindClientByID(ctx, orgID, req.ClientID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.InvoiceItem, 0, len(req.Items))
	for _, input := range req.Items {
		unitAmount, err := domain.NewMoney(input.UnitAmount, req.Currency)
		if err != nil {
			return nil, err
		}
		item, err := domain.NewInvoiceItem(input.Description, input.Quantity, unitAmount)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	discount, err := domain.NewMoney(req.Discount, req.Currency)
	if err != nil {
		return nil, err
	}
	tax, err := domain.NewMoney(req.Tax, req.Currency)
	if err != nil {
		return nil, err
	}

	status := domain.InvoiceStatus(req.Status)
	if status == "" {
		status = domain.InvoiceDraft
	}
	invoice, err := domain.NewInvoice(uuid.NewString(), orgID, client.ClientID, req.Number, status, req.IssueDate, req.DueDate, items, discount, tax)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes
	invoice.InternalNotes = req.InternalNotes
	now := time.Now()
	invoice.AuditFields = domain.NewAuditFields(creatorUserID, now)

	var txn *domain.Transaction
	if req.CreateTransaction {
		pending, err := domain.NewTransaction(
			uuid.NewString(), orgID,
			domain.Income, domain.SubtypeInvoicePayment,
			invoice.Total, invoice.DueDate,
			"expected payment of invoice "+invoice.Number,
		)
		if err != nil {
			return nil, err
		}
		pending.InvoiceID = &invoice.InvoiceID
		pending.ClientID = &invoice.ClientID
		pending.AuditFields = domain.NewAuditFields(creatorUserID, now)
		txn = &pending
	}

	if err := s.coordinator.CreateInvoiceWithTransaction(ctx, invoice, txn); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return &invoice, nil
}

func (s *invoiceService) ApprovePayment(ctx context.Context, orgID string, invoiceID string, req dto.ApprovePaymentRequest, userID string) (*domain.Invoice, error) {
	invoice, _, err := s.coordinator.ApproveInvoicePayment(ctx, orgID, invoiceID, req.PaidAt, req.Notes, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, orgID string, invoiceID string, req dto.CancelInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.coordinator.CancelInvoice(ctx, orgID, invoiceID, req.Reason, userID, time.Now())
}
