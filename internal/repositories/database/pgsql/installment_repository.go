package pgsql

import (
	"context"
	"fmt"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_management_app/internal/models"
	"github.com/agencydesk/agency_management_app/internal/utils/mapping"
)

type PgxInstallmentRepository struct {
	db querier
}

// newPgxInstallmentRepository creates a new repository for installment data.
func newPgxInstallmentRepository(db querier) *PgxInstallmentRepository {
	return &PgxInstallmentRepository{db: db}
}

// Ensure PgxInstallmentRepository implements portsrepo.InstallmentRepositoryFacade
var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

const installmentColumns = `client_id, number, amount, currency_code, due_date, status, notes, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

// ListInstallmentsByClient retrieves a client's plan ordered by number.
func (r *PgxInstallmentRepository) ListInstallmentsByClient(ctx context.Context, clientID string) ([]domain.Installment, error) {
	query := fmt.Sprintf(`SELECT %s FROM installments WHERE client_id = $1 ORDER BY number`, installmentColumns)
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments of client %s: %w", clientID, translatePgError(err))
	}
	defer rows.Close()

	var ms []models.Installment
	for rows.Next() {
		var m models.Installment
		if err := rows.Scan(
			&m.ClientID, &m.Number, &m.Amount, &m.CurrencyCode, &m.DueDate, &m.Status, &m.Notes, &m.PaidAt,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainInstallmentSlice(ms), nil
}

// ReplaceInstallmentsForClient deletes the client's previous plan and inserts
// the new one. Editing a plan always replaces it wholesale, so this must run
// inside an atomic unit.
func (r *PgxInstallmentRepository) ReplaceInstallmentsForClient(ctx context.Context, clientID string, installments []domain.Installment) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM installments WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("failed to delete previous plan of client %s: %w", clientID, translatePgError(err))
	}

	query := fmt.Sprintf(`
		INSERT INTO installments (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`, installmentColumns)
	for _, ins := range installments {
		m := mapping.ToModelInstallment(ins)
		if _, err := r.db.Exec(ctx, query,
			m.ClientID, m.Number, m.Amount, m.CurrencyCode, m.DueDate, m.Status, m.Notes, m.PaidAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to save installment %d of client %s: %w", m.Number, clientID, translatePgError(err))
		}
	}
	return nil
}

// UpdateInstallment persists a single installment's state transition.
func (r *PgxInstallmentRepository) UpdateInstallment(ctx context.Context, installment domain.Installment) error {
	m := mapping.ToModelInstallment(installment)

	query := `
		UPDATE installments
		SET status = $3, notes = $4, paid_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $1 AND number = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ClientID, m.Number, m.Status, m.Notes, m.PaidAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update installment %d of client %s: %w", m.Number, m.ClientID, translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: installment %d of client %s", apperrors.ErrNotFound, m.Number, m.ClientID)
	}
	return nil
}
