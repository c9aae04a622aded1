package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
	"github.com/agencydesk/agency_management_app/internal/utils/validation"
)

// invoiceGeneratorService runs the idempotent monthly invoice batch.
type invoiceGeneratorService struct {
	clientRepo  portsrepo.ClientRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	coordinator *AtomicCoordinator
	logger      *slog.Logger
}

// NewInvoiceGeneratorService creates a new InvoiceGeneratorService.
func NewInvoiceGeneratorService(clientRepo portsrepo.ClientRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, coordinator *AtomicCoordinator, logger *slog.Logger) portssvc.InvoiceGeneratorSvcFacade {
	return &invoiceGeneratorService{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

var _ portssvc.InvoiceGeneratorSvcFacade = (*invoiceGeneratorService)(nil)

// GenerateMonthlyInvoices creates at most one OPEN invoice per eligible
// client for the month. Existence is checked inside the atomic unit and
// backed by a uniqueness constraint, so two racing runs cannot both bill the
// same client; the loser reports the client as skipped. One client's failure
// is recorded in its outcome and never aborts the rest of the batch.
func (s *invoiceGeneratorService) GenerateMonthlyInvoices(ctx context.Context, params dto.GenerateMonthlyInvoicesParams, actorUserID string) (*dto.GenerateMonthlyInvoicesResult, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	monthStart, err := firstDayOfMonth(params.Month)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListActiveClients(ctx, params.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active clients for org %s: %w", params.OrgID, err)
	}

	logger := s.logger.With(slog.String("orgID", params.OrgID), slog.String("month", params.Month), slog.Bool("dryRun", params.DryRun))
	logger.InfoContext(ctx, "starting monthly invoice generation", slog.Int("clients", len(clients)))

	result := &dto.GenerateMonthlyInvoicesResult{Details: make([]dto.ClientOutcome, 0, len(clients))}
	now := time.Now()
	for _, client := range clients {
		outcome := s.generateForClient(ctx, client, params, monthStart, now, actorUserID)
		if outcome.InvoiceID != nil {
			result.Created++
		} else {
			result.Skipped++
		}
		result.Details = append(result.Details, outcome)
	}

	logger.InfoContext(ctx, "monthly invoice generation finished",
		slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	return result, nil
}

func (s *invoiceGeneratorService) generateForClient(ctx context.Context, client domain.Client, params dto.GenerateMonthlyInvoicesParams, monthStart, now time.Time, actorUserID string) dto.ClientOutcome {
	outcome := dto.ClientOutcome{ClientID: client.ClientID}
	if !client.HasPositivePlan() {
		outcome.Reason = dto.SkipReasonNoPlan
		return outcome
	}
	invoice, err := s.buildMonthlyInvoice(client, params.Month, monthStart, now, actorUserID)
	if err != nil {
		outcome.Reason = "error: " + err.Error()
		s.logger.ErrorContext(ctx, "failed to build monthly invoice",
			slog.String("clientID", client.ClientID), slog.String("error", err.Error()))
		return outcome
	}
	if params.DryRun {
		// A dry run replaces only the persistence, not the decision: the
		// already-exists skip must be simulated too. A plain read suffices,
		// nothing is written.
		exists, err := s.invoiceRepo.ExistsForClientMonth(ctx, client.OrgID, client.ClientID, params.Month)
		if err != nil {
			outcome.Reason = "error: " + err.Error()
			s.logger.ErrorContext(ctx, "failed to check existing monthly invoice",
				slog.String("clientID", client.ClientID), slog.String("error", err.Error()))
			return outcome
		}
		if exists {
			outcome.Reason = dto.SkipReasonAlreadyExists
			return outcome
		}
		id := invoice.InvoiceID
		outcome.InvoiceID = &id
		return outcome
	}
	if err := s.coordinator.CreateMonthlyInvoice(ctx, invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			outcome.Reason = dto.SkipReasonAlreadyExists
			return outcome
		}
		outcome.Reason = "error: " + err.Error()
		s.logger.ErrorContext(ctx, "failed to persist monthly invoice",
			slog.String("clientID", client.ClientID), slog.String("error", err.Error()))
		return outcome
	}
	id := invoice.InvoiceID
	outcome.InvoiceID = &id
	return outcome
}

// buildMonthlyInvoice assembles the OPEN retainer invoice for one client.
// The due date is the client's earliest default due day clamped into the
// billing month, or the month's last day when no due days are configured.
func (s *invoiceGeneratorService) buildMonthlyInvoice(client domain.Client, month string, monthStart, now time.Time, actorUserID string) (domain.Invoice, error) {
	item, err := domain.NewInvoiceItem(fmt.Sprintf("Monthly retainer %s", month), decimal.NewFromInt(1), client.PlanAmount)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice, err := domain.NewInvoice(
		uuid.NewString(),
		client.OrgID,
		client.ClientID,
		monthlyInvoiceNumber(month, client.ClientID),
		domain.InvoiceOpen,
		now,
		monthlyDueDate(client, monthStart),
		[]domain.InvoiceItem{item},
		domain.ZeroMoney(client.PlanAmount.Currency),
		domain.ZeroMoney(client.PlanAmount.Currency),
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.BillingMonth = month
	invoice.AuditFields = domain.NewAuditFields(actorUserID, now)
	return invoice, nil
}

func monthlyDueDate(client domain.Client, monthStart time.Time) time.Time {
	if len(client.DefaultDueDays) == 0 {
		return monthStart.AddDate(0, 1, -1)
	}
	days := append([]int(nil), client.DefaultDueDays...)
	sort.Ints(days)
	return clampToMonth(monthStart, days[0])
}

func monthlyInvoiceNumber(month, clientID string) string {
	suffix := strings.ReplaceAll(clientID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("INV-%s-%s", month, strings.ToUpper(suffix))
}
