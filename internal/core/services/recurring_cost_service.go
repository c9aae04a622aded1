package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
	"github.com/agencydesk/agency_management_app/internal/utils/validation"
)

// recurringCostService materializes recurring cost items into ledger entries.
type recurringCostService struct {
	coordinator *AtomicCoordinator
	logger      *slog.Logger
}

// NewRecurringCostService creates a new RecurringCostService.
func NewRecurringCostService(coordinator *AtomicCoordinator, logger *slog.Logger) portssvc.RecurringCostSvcFacade {
	return &recurringCostService{coordinator: coordinator, logger: logger}
}

var _ portssvc.RecurringCostSvcFacade = (*recurringCostService)(nil)

// MaterializeMonthlyCosts creates one pending EXPENSE entry per active
// monthly cost item not yet materialized for the month. The batch runs in one
// atomic unit, so re-running after a mid-batch failure never double-books.
func (s *recurringCostService) MaterializeMonthlyCosts(ctx context.Context, params dto.MaterializeMonthlyCostsParams, actorUserID string) (*dto.MaterializeMonthlyCostsResult, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	created, skipped, err := s.coordinator.MaterializeMonthlyCosts(ctx, params.OrgID, params.Month, actorUserID, time.Now())
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "recurring cost materialization finished",
		slog.String("orgID", params.OrgID), slog.String("month", params.Month),
		slog.Int("created", created), slog.Int("skipped", skipped))
	return &dto.MaterializeMonthlyCostsResult{Created: created, Skipped: skipped}, nil
}
