package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/agencydesk/agency_management_app/internal/jobs"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background worker for scheduled billing tasks",
	Long: `worker consumes billing tasks from Redis and, when BILLING_ORG_ID is
configured, also schedules the recurring runs: the monthly invoice batch,
cost materialization and the daily overdue scan.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	billing := jobs.NewBillingJobs(a.services, a.repos.ClientRepo, a.repos.InstallmentRepo, a.logger, a.cfg.SystemUserID)

	cfg := jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: a.cfg.RedisAddr},
		Concurrency: a.cfg.WorkerConcurrency,
		Logger:      a.logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskGenerateMonthlyInvoices, Handler: billing.HandleGenerateMonthlyInvoices},
			{Type: jobs.TaskMaterializeCosts, Handler: billing.HandleMaterializeCosts},
			{Type: jobs.TaskOverdueScan, Handler: billing.HandleOverdueScan},
		},
	}

	if a.cfg.BillingOrgID != "" {
		cron, err := cronRegistrations(a)
		if err != nil {
			return err
		}
		cfg.Cron = cron
	} else {
		a.logger.Warn("BILLING_ORG_ID not set; cron schedules disabled, worker only consumes enqueued tasks")
	}

	w, err := jobs.NewWorker(cfg)
	if err != nil {
		return err
	}

	a.logger.Info("worker starting",
		slog.String("redis", a.cfg.RedisAddr),
		slog.Int("concurrency", a.cfg.WorkerConcurrency),
		slog.Bool("cronEnabled", a.cfg.BillingOrgID != ""))

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// cronRegistrations builds the recurring schedule for the configured org.
// Months are left empty in the payloads so each run bills the month it
// fires in.
func cronRegistrations(a *app) ([]jobs.CronRegistration, error) {
	invoiceTask, err := jobs.NewGenerateMonthlyInvoicesTask(jobs.BillingMonthPayload{OrgID: a.cfg.BillingOrgID})
	if err != nil {
		return nil, err
	}
	costTask, err := jobs.NewMaterializeCostsTask(jobs.BillingMonthPayload{OrgID: a.cfg.BillingOrgID})
	if err != nil {
		return nil, err
	}
	overdueTask, err := jobs.NewOverdueScanTask(jobs.OverdueScanPayload{OrgID: a.cfg.BillingOrgID})
	if err != nil {
		return nil, err
	}
	return []jobs.CronRegistration{
		{Spec: a.cfg.InvoiceGenCron, Task: invoiceTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		{Spec: a.cfg.CostMaterializeCron, Task: costTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		{Spec: a.cfg.OverdueScanCron, Task: overdueTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
	}, nil
}
