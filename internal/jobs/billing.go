package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
)

// BillingJobs holds the handlers for the recurring billing tasks. Each
// handler is a thin shell around a service call; retryable failures bubble up
// so asynq retries them, everything else skips retry.
type BillingJobs struct {
	services     *portssvc.ServiceContainer
	clientRepo   portsrepo.ClientRepositoryFacade
	instRepo     portsrepo.InstallmentRepositoryFacade
	logger       *slog.Logger
	systemUserID string
}

// NewBillingJobs creates the billing task handlers.
func NewBillingJobs(services *portssvc.ServiceContainer, clientRepo portsrepo.ClientRepositoryFacade, instRepo portsrepo.InstallmentRepositoryFacade, logger *slog.Logger, systemUserID string) *BillingJobs {
	return &BillingJobs{
		services:     services,
		clientRepo:   clientRepo,
		instRepo:     instRepo,
		logger:       logger,
		systemUserID: systemUserID,
	}
}

// retryDecision converts service errors into asynq-friendly ones.
func retryDecision(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsRetryable(err) {
		return err
	}
	return errors.Join(err, asynq.SkipRetry)
}

func currentMonth() string {
	return time.Now().UTC().Format("2006-01")
}

// HandleGenerateMonthlyInvoices processes TaskGenerateMonthlyInvoices tasks.
func (j *BillingJobs) HandleGenerateMonthlyInvoices(ctx context.Context, t *asynq.Task) error {
	var payload BillingMonthPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Month == "" {
		payload.Month = currentMonth()
	}
	result, err := j.services.InvoiceGenerator.GenerateMonthlyInvoices(ctx, dto.GenerateMonthlyInvoicesParams{
		OrgID: payload.OrgID,
		Month: payload.Month,
	}, j.systemUserID)
	if err != nil {
		j.logger.ErrorContext(ctx, "monthly invoice job failed",
			slog.String("orgID", payload.OrgID), slog.String("month", payload.Month), slog.String("error", err.Error()))
		return retryDecision(err)
	}
	j.logger.InfoContext(ctx, "monthly invoice job done",
		slog.String("orgID", payload.OrgID), slog.String("month", payload.Month),
		slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	return nil
}

// HandleMaterializeCosts processes TaskMaterializeCosts tasks.
func (j *BillingJobs) HandleMaterializeCosts(ctx context.Context, t *asynq.Task) error {
	var payload BillingMonthPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Month == "" {
		payload.Month = currentMonth()
	}
	result, err := j.services.RecurringCost.MaterializeMonthlyCosts(ctx, dto.MaterializeMonthlyCostsParams{
		OrgID: payload.OrgID,
		Month: payload.Month,
	}, j.systemUserID)
	if err != nil {
		j.logger.ErrorContext(ctx, "cost materialization job failed",
			slog.String("orgID", payload.OrgID), slog.String("month", payload.Month), slog.String("error", err.Error()))
		return retryDecision(err)
	}
	j.logger.InfoContext(ctx, "cost materialization job done",
		slog.String("orgID", payload.OrgID), slog.String("month", payload.Month),
		slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	return nil
}

// HandleOverdueScan processes TaskOverdueScan tasks: every PENDING
// installment past its due date is flagged LATE. Invoice overdue status is
// derived at read time and never stored, so invoices are not touched here.
func (j *BillingJobs) HandleOverdueScan(ctx context.Context, t *asynq.Task) error {
	var payload OverdueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	clients, err := j.clientRepo.ListActiveClients(ctx, payload.OrgID)
	if err != nil {
		return retryDecision(err)
	}

	now := time.Now()
	flagged := 0
	for _, client := range clients {
		installments, err := j.instRepo.ListInstallmentsByClient(ctx, client.ClientID)
		if err != nil {
			return retryDecision(err)
		}
		for i := range installments {
			if installments[i].Status != domain.InstallmentPending || !installments[i].DueDate.Before(now) {
				continue
			}
			if err := installments[i].MarkLate(now); err != nil {
				continue
			}
			installments[i].Touch(j.systemUserID, now)
			if err := j.instRepo.UpdateInstallment(ctx, installments[i]); err != nil {
				return retryDecision(err)
			}
			flagged++
		}
	}
	j.logger.InfoContext(ctx, "overdue scan done",
		slog.String("orgID", payload.OrgID), slog.Int("flagged", flagged))
	return nil
}
