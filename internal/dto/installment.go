package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateInstallmentPlanRequest regenerates a client's installment plan,
// replacing any previous plan wholesale. DueDays are days of month (1..31);
// when empty the start date's day is used.
type GenerateInstallmentPlanRequest struct {
	ContractValue decimal.Decimal `json:"contractValue" validate:"required"`
	Currency      string          `json:"currency" validate:"required,len=3,uppercase"`
	Count         int             `json:"count" validate:"required,min=1"`
	StartDate     time.Time       `json:"startDate" validate:"required"`
	DueDays       []int           `json:"dueDays" validate:"omitempty,dive,min=1,max=31"`
}

// InstallmentResponse is the external view of one installment.
type InstallmentResponse struct {
	ClientID string          `json:"clientID"`
	Number   int             `json:"number"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	DueDate  time.Time       `json:"dueDate"`
	Status   string          `json:"status"`
}
