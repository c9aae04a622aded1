package pgsql

import (
	"context"
	"fmt"

	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_management_app/internal/models"
	"github.com/agencydesk/agency_management_app/internal/utils/mapping"
)

type PgxCostItemRepository struct {
	db querier
}

// newPgxCostItemRepository creates a new repository for recurring cost items.
func newPgxCostItemRepository(db querier) *PgxCostItemRepository {
	return &PgxCostItemRepository{db: db}
}

// Ensure PgxCostItemRepository implements portsrepo.CostItemRepositoryFacade
var _ portsrepo.CostItemRepositoryFacade = (*PgxCostItemRepository)(nil)

// ListActiveMonthlyCostItems retrieves the org's active MONTHLY cost items,
// the source records for materialization.
func (r *PgxCostItemRepository) ListActiveMonthlyCostItems(ctx context.Context, orgID string) ([]domain.CostItem, error) {
	query := `
		SELECT cost_item_id, org_id, name, amount, currency_code, recurrence, active, client_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM cost_items
		WHERE org_id = $1 AND active AND recurrence = 'MONTHLY'
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost items of org %s: %w", orgID, translatePgError(err))
	}
	defer rows.Close()

	var items []domain.CostItem
	for rows.Next() {
		var m models.CostItem
		if err := rows.Scan(
			&m.CostItemID, &m.OrgID, &m.Name, &m.Amount, &m.CurrencyCode, &m.Recurrence, &m.Active, &m.ClientID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cost item row: %w", err)
		}
		items = append(items, mapping.ToDomainCostItem(m))
	}
	return items, rows.Err()
}
