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
	"github.com/agencydesk/agency_management_app/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	db querier
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(db querier) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{db: db}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, org_id, client_id, number, status, issue_date, due_date, billing_month,
	subtotal, discount, tax, total, currency_code, paid_at, cancelled_at, cancel_reason, notes, internal_notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.OrgID, &m.ClientID, &m.Number, &m.Status, &m.IssueDate, &m.DueDate, &m.BillingMonth,
		&m.Subtotal, &m.Discount, &m.Tax, &m.Total, &m.CurrencyCode, &m.PaidAt, &m.CancelledAt, &m.CancelReason,
		&m.Notes, &m.InternalNotes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, orgID, invoiceID string, forUpdate bool) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE org_id = $1 AND invoice_id = $2`, invoiceColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanInvoice(r.db.QueryRow(ctx, query, orgID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, translatePgError(err))
	}
	items, err := r.loadItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainInvoice(m, items)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) loadItems(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error) {
	query := `
		SELECT invoice_id, position, description, quantity, unit_amount, total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position;
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items of invoice %s: %w", invoiceID, translatePgError(err))
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.InvoiceID, &item.Position, &item.Description, &item.Quantity, &item.UnitAmount, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan item of invoice %s: %w", invoiceID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindInvoiceByID retrieves an invoice with its line items, scoped to the org.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, orgID, invoiceID, false)
}

// FindInvoiceByIDForUpdate reloads the invoice under a row lock so its state
// can be re-validated inside an atomic unit before writing.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, orgID, invoiceID, true)
}

// ListInvoicesByOrg retrieves a page of invoices ordered by creation time
// descending, using token-based pagination. Line items are not loaded for
// list views.
func (r *PgxInvoiceRepository) ListInvoicesByOrg(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE org_id = $1`, invoiceColumns)
	args := []any{orgID}

	if nextToken != nil && *nextToken != "" {
		createdBefore, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND created_at < $2`
		args = append(args, createdBefore)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, invoice_id DESC LIMIT %d`, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices of org %s: %w", orgID, translatePgError(err))
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices of org %s: %w", orgID, err)
	}

	var token *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		t := pagination.EncodeDateBasedToken(invoices[limit-1].CreatedAt)
		token = &t
	}
	return invoices, token, nil
}

// ExistsForClientMonth reports whether a generated invoice already exists for
// (org, client, billing month). Cancelled invoices do not block regeneration.
func (r *PgxInvoiceRepository) ExistsForClientMonth(ctx context.Context, orgID string, clientID string, month string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invoices
			WHERE org_id = $1 AND client_id = $2 AND billing_month = $3 AND status != 'CANCELLED'
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, orgID, clientID, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invoice existence for client %s month %s: %w", clientID, month, translatePgError(err))
	}
	return exists, nil
}

// SaveInvoice inserts an invoice together with all its line items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := fmt.Sprintf(`
		INSERT INTO invoices (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`, invoiceColumns)
	_, err := r.db.Exec(ctx, query,
		m.InvoiceID, m.OrgID, m.ClientID, m.Number, m.Status, m.IssueDate, m.DueDate, m.BillingMonth,
		m.Subtotal, m.Discount, m.Tax, m.Total, m.CurrencyCode, m.PaidAt, m.CancelledAt, m.CancelReason,
		m.Notes, m.InternalNotes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: invoice for client %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, translatePgError(err))
	}

	itemQuery := `
		INSERT INTO invoice_items (invoice_id, position, description, quantity, unit_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range mapping.ToModelInvoiceItems(invoice) {
		if _, err := r.db.Exec(ctx, itemQuery, item.InvoiceID, item.Position, item.Description, item.Quantity, item.UnitAmount, item.Total); err != nil {
			return fmt.Errorf("failed to save item %d of invoice %s: %w", item.Position, m.InvoiceID, translatePgError(err))
		}
	}
	return nil
}

// UpdateInvoiceStatus persists a state transition. Line items are immutable
// after creation, so only the status columns are written.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET status = $3, paid_at = $4, cancelled_at = $5, cancel_reason = $6, internal_notes = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE org_id = $1 AND invoice_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.OrgID, m.InvoiceID, m.Status, m.PaidAt, m.CancelledAt, m.CancelReason, m.InternalNotes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, m.InvoiceID)
	}
	return nil
}
