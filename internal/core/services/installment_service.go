package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/dto"
	"github.com/agencydesk/agency_management_app/internal/utils/validation"
)

// GenerateInstallmentSchedule is the pure plan generator: deterministic,
// no wall clock, no randomness.
//
// Months are walked starting at startDate's month; within each month the
// configured due days are visited in ascending order, each clamped to the
// month's last day (day 31 in February lands on the 28th/29th). Candidates
// strictly before startDate are skipped so a plan started mid-month never
// dues in the past. The contract value is split equally at minor-unit
// precision and the final installment absorbs the rounding remainder, so the
// plan always sums exactly to the contract value.
func GenerateInstallmentSchedule(clientID string, contractValue domain.Money, count int, startDate time.Time, dueDays []int) ([]domain.Installment, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1", apperrors.ErrValidation)
	}
	if !contractValue.IsPositive() {
		return nil, fmt.Errorf("%w: contract value must be positive", apperrors.ErrInvalidAmount)
	}
	days := make([]int, 0, len(dueDays))
	for _, day := range dueDays {
		if day < 1 || day > 31 {
			return nil, fmt.Errorf("%w: due day %d out of range 1..31", apperrors.ErrValidation, day)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		days = []int{startDate.Day()}
	}
	sort.Ints(days)

	countDec := decimal.NewFromInt(int64(count))
	share := contractValue.Amount.Div(countDec).Round(domain.MinorUnitPlaces)
	lastShare := contractValue.Amount.Sub(share.Mul(decimal.NewFromInt(int64(count - 1))))
	// Every installment must carry at least one minor unit. Rounding can push
	// either share to zero: a tiny contract value rounds the equal share down,
	// and a share rounded up can leave nothing for the final installment.
	if !share.IsPositive() || !lastShare.IsPositive() {
		return nil, fmt.Errorf("%w: contract value %s too small to split into %d installments", apperrors.ErrInvalidAmount, contractValue, count)
	}

	installments := make([]domain.Installment, 0, count)
	monthCursor := time.Date(startDate.Year(), startDate.Month(), 1, 0, 0, 0, 0, startDate.Location())
	for len(installments) < count {
		for _, day := range days {
			if len(installments) == count {
				break
			}
			due := clampToMonth(monthCursor, day)
			if due.Before(startDate) {
				continue
			}
			number := len(installments) + 1
			amount := share
			if number == count {
				amount = lastShare
			}
			installments = append(installments, domain.Installment{
				ClientID: clientID,
				Number:   number,
				Amount:   domain.Money{Amount: amount, Currency: contractValue.Currency},
				DueDate:  due,
				Status:   domain.InstallmentPending,
			})
		}
		monthCursor = monthCursor.AddDate(0, 1, 0)
	}
	return installments, nil
}

// clampToMonth places day-of-month inside monthStart's month, clamping past
// the month's last day.
func clampToMonth(monthStart time.Time, day int) time.Time {
	lastDay := monthStart.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, monthStart.Location())
}

// installmentService manages clients' installment plans.
type installmentService struct {
	clientRepo      portsrepo.ClientRepositoryFacade
	installmentRepo portsrepo.InstallmentRepositoryFacade
	uow             portsrepo.UnitOfWork
}

// NewInstallmentService creates a new InstallmentService.
func NewInstallmentService(clientRepo portsrepo.ClientRepositoryFacade, installmentRepo portsrepo.InstallmentRepositoryFacade, uow portsrepo.UnitOfWork) portssvc.InstallmentSvcFacade {
	return &installmentService{
		clientRepo:      clientRepo,
		installmentRepo: installmentRepo,
		uow:             uow,
	}
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

func (s *installmentService) generate(ctx context.Context, orgID, clientID string, req dto.GenerateInstallmentPlanRequest) ([]domain.Installment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}
	contractValue, err := domain.NewMoney(req.ContractValue, req.Currency)
	if err != nil {
		return nil, err
	}
	dueDays := req.DueDays
	if len(dueDays) == 0 {
		dueDays = client.DefaultDueDays
	}
	return GenerateInstallmentSchedule(client.ClientID, contractValue, req.Count, req.StartDate, dueDays)
}

func (s *installmentService) PreviewPlan(ctx context.Context, orgID string, clientID string, req dto.GenerateInstallmentPlanRequest) ([]domain.Installment, error) {
	return s.generate(ctx, orgID, clientID, req)
}

// RegeneratePlan replaces the client's plan wholesale inside one atomic unit.
func (s *installmentService) RegeneratePlan(ctx context.Context, orgID string, clientID string, req dto.GenerateInstallmentPlanRequest, userID string) ([]domain.Installment, error) {
	plan, err := s.generate(ctx, orgID, clientID, req)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range plan {
		plan[i].AuditFields = domain.NewAuditFields(userID, now)
	}
	err = s.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return repos.Installments.ReplaceInstallmentsForClient(ctx, clientID, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace installment plan for client %s: %w", clientID, err)
	}
	return plan, nil
}

func (s *installmentService) ListInstallments(ctx context.Context, orgID string, clientID string) ([]domain.Installment, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, orgID, clientID); err != nil {
		return nil, err
	}
	return s.installmentRepo.ListInstallmentsByClient(ctx, clientID)
}

func (s *installmentService) ConfirmInstallment(ctx context.Context, orgID string, clientID string, number int, userID string) (*domain.Installment, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, orgID, clientID); err != nil {
		return nil, err
	}
	plan, err := s.installmentRepo.ListInstallmentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range plan {
		if plan[i].Number != number {
			continue
		}
		now := time.Now()
		if err := plan[i].Confirm(now); err != nil {
			return nil, err
		}
		plan[i].Touch(userID, now)
		if err := s.installmentRepo.UpdateInstallment(ctx, plan[i]); err != nil {
			return nil, fmt.Errorf("failed to update installment %d of client %s: %w", number, clientID, err)
		}
		return &plan[i], nil
	}
	return nil, fmt.Errorf("%w: installment %d of client %s", apperrors.ErrNotFound, number, clientID)
}
