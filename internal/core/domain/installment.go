package domain

import (
	"fmt"
	"time"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
)

// InstallmentStatus is the lifecycle state of one scheduled installment.
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "PENDING"
	InstallmentConfirmed InstallmentStatus = "CONFIRMED"
	InstallmentLate      InstallmentStatus = "LATE"
)

// Installment is one scheduled partial payment of a client's contract. A
// client owns its installments; editing the plan replaces them wholesale.
type Installment struct {
	ClientID string            `json:"clientID"`
	Number   int               `json:"number"` // 1..N, unique per plan, increasing with DueDate
	Amount   Money             `json:"amount"`
	DueDate  time.Time         `json:"dueDate"`
	Status   InstallmentStatus `json:"status"`
	Notes    string            `json:"notes,omitempty"`
	PaidAt   *time.Time        `json:"paidAt,omitempty"`
	AuditFields
}

// Confirm records that the installment was settled.
func (ins *Installment) Confirm(paidAt time.Time) error {
	if ins.Status == InstallmentConfirmed {
		return apperrors.ErrInstallmentAlreadyConfirmed
	}
	ins.Status = InstallmentConfirmed
	ins.PaidAt = &paidAt
	return nil
}

// MarkLate flags a pending installment past its due date.
func (ins *Installment) MarkLate(now time.Time) error {
	if ins.Status != InstallmentPending {
		return fmt.Errorf("%w: only PENDING installments can become LATE, got %s", apperrors.ErrValidation, ins.Status)
	}
	if !ins.DueDate.Before(now) {
		return fmt.Errorf("%w: installment %d is not past due", apperrors.ErrValidation, ins.Number)
	}
	ins.Status = InstallmentLate
	return nil
}
