package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_management_app/internal/models"
	"github.com/agencydesk/agency_management_app/internal/utils/mapping"
)

type PgxClientRepository struct {
	db querier
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(db querier) *PgxClientRepository {
	return &PgxClientRepository{db: db}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, org_id, name, active, plan_amount, contract_value, currency_code, default_due_days,
	created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID, &m.OrgID, &m.Name, &m.Active, &m.PlanAmount, &m.ContractValue, &m.CurrencyCode, &m.DefaultDueDays,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindClientByID retrieves a client scoped to the org.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, orgID string, clientID string) (*domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE org_id = $1 AND client_id = $2`, clientColumns)
	m, err := scanClient(r.db.QueryRow(ctx, query, orgID, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, translatePgError(err))
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

// ListActiveClients retrieves the org's active clients ordered by name. The
// monthly invoice generator iterates this list.
func (r *PgxClientRepository) ListActiveClients(ctx context.Context, orgID string) ([]domain.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE org_id = $1 AND active ORDER BY name`, clientColumns)
	rows, err := r.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active clients of org %s: %w", orgID, translatePgError(err))
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(m))
	}
	return clients, rows.Err()
}
