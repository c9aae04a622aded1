package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agency_management_app/internal/dto"
)

var materializeCostsCmd = &cobra.Command{
	Use:   "materialize-costs",
	Short: "Create pending expense entries for active monthly cost items",
	RunE:  runMaterializeCosts,
}

func init() {
	rootCmd.AddCommand(materializeCostsCmd)

	materializeCostsCmd.Flags().String("org", "", "Org ID (required)")
	materializeCostsCmd.Flags().String("month", "", "Calendar month YYYY-MM (default: current month)")
	_ = materializeCostsCmd.MarkFlagRequired("org")
}

func runMaterializeCosts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	orgID, _ := cmd.Flags().GetString("org")
	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	result, err := a.services.RecurringCost.MaterializeMonthlyCosts(ctx, dto.MaterializeMonthlyCostsParams{
		OrgID: orgID,
		Month: month,
	}, a.cfg.SystemUserID)
	if err != nil {
		return err
	}

	a.logger.Info("cost materialization finished",
		slog.String("orgID", orgID), slog.String("month", month),
		slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	return nil
}
