package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agency_management_app/internal/dto"
)

var generateInvoicesCmd = &cobra.Command{
	Use:   "generate-invoices",
	Short: "Run the idempotent monthly invoice batch for one org",
	Example: `  # Bill the current month
  agency_backend generate-invoices --org 4f6f...

  # Re-run a past month (already billed clients are skipped, never duplicated)
  agency_backend generate-invoices --org 4f6f... --month 2025-06

  # Report what would be created without persisting
  agency_backend generate-invoices --org 4f6f... --month 2025-07 --dry-run`,
	RunE: runGenerateInvoices,
}

func init() {
	rootCmd.AddCommand(generateInvoicesCmd)

	generateInvoicesCmd.Flags().String("org", "", "Org ID to bill (required)")
	generateInvoicesCmd.Flags().String("month", "", "Calendar month YYYY-MM (default: current month)")
	generateInvoicesCmd.Flags().Bool("dry-run", false, "Simulate the run without persisting anything")
	_ = generateInvoicesCmd.MarkFlagRequired("org")
}

func runGenerateInvoices(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	orgID, _ := cmd.Flags().GetString("org")
	month, _ := cmd.Flags().GetString("month")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	result, err := a.services.InvoiceGenerator.GenerateMonthlyInvoices(ctx, dto.GenerateMonthlyInvoicesParams{
		OrgID:  orgID,
		Month:  month,
		DryRun: dryRun,
	}, a.cfg.SystemUserID)
	if err != nil {
		return err
	}

	a.logger.Info("monthly invoice batch finished",
		slog.String("orgID", orgID), slog.String("month", month), slog.Bool("dryRun", dryRun),
		slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	failed := 0
	for _, outcome := range result.Details {
		if outcome.InvoiceID == nil && outcome.Reason != dto.SkipReasonAlreadyExists && outcome.Reason != dto.SkipReasonNoPlan {
			a.logger.Error("client failed", slog.String("clientID", outcome.ClientID), slog.String("reason", outcome.Reason))
			failed++
		}
	}
	if failed > 0 {
		return errors.New("some clients failed; see log for details")
	}
	return nil
}
