package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskGenerateMonthlyInvoices runs the idempotent monthly invoice batch
	// for one org and month.
	TaskGenerateMonthlyInvoices = "billing:generate_monthly_invoices"
	// TaskMaterializeCosts turns the org's recurring cost items into ledger
	// entries for one month.
	TaskMaterializeCosts = "billing:materialize_costs"
	// TaskOverdueScan flags pending installments past their due date.
	TaskOverdueScan = "billing:overdue_scan"
)

// BillingMonthPayload drives the monthly billing tasks. An empty Month means
// the month the task runs in.
type BillingMonthPayload struct {
	OrgID string `json:"orgID"`
	Month string `json:"month,omitempty"`
}

// OverdueScanPayload drives the overdue scan.
type OverdueScanPayload struct {
	OrgID string `json:"orgID"`
}

// NewGenerateMonthlyInvoicesTask constructs the monthly invoice batch task.
func NewGenerateMonthlyInvoicesTask(payload BillingMonthPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGenerateMonthlyInvoices, data), nil
}

// NewMaterializeCostsTask constructs the cost materialization task.
func NewMaterializeCostsTask(payload BillingMonthPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMaterializeCosts, data), nil
}

// NewOverdueScanTask constructs the overdue scan task.
func NewOverdueScanTask(payload OverdueScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOverdueScan, data), nil
}
