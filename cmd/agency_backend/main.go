package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_management_app/internal/core/ports/services"
	"github.com/agencydesk/agency_management_app/internal/core/services"
	"github.com/agencydesk/agency_management_app/internal/platform/config"
	"github.com/agencydesk/agency_management_app/internal/repositories/database/pgsql"
	"github.com/agencydesk/agency_management_app/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "agency_backend",
	Short: "Agency billing backend: invoices, payments, ledger and installment plans",
	Long: `agency_backend runs the billing core of the agency management app:
the monthly invoice generator, recurring cost materialization, payment
processing and the background worker that schedules them.`,
	SilenceUsage: true,
}

// app bundles everything a subcommand needs after bootstrap.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	repos    portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer
	close    func()
}

// bootstrap loads config, connects the pool and wires the service container.
func bootstrap(ctx context.Context) (*app, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	repos := pgsql.NewRepositoryProvider(pool, cfg.LockTimeout, cfg.ExecTimeout)
	container := services.NewServiceContainer(&repos, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		repos:    repos,
		services: container,
		close:    func() { database.ClosePgxPool(pool) },
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
