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

type PgxPaymentRepository struct {
	db querier
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(db querier) *PgxPaymentRepository {
	return &PgxPaymentRepository{db: db}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, org_id, invoice_id, amount, currency_code, method, status, reference, notes,
	refunded_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.OrgID, &m.InvoiceID, &m.Amount, &m.CurrencyCode, &m.Method, &m.Status, &m.Reference, &m.Notes,
		&m.RefundedAmount, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindPaymentByID retrieves a payment scoped to the org.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, orgID string, paymentID string) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE org_id = $1 AND payment_id = $2`, paymentColumns)
	m, err := scanPayment(r.db.QueryRow(ctx, query, orgID, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, translatePgError(err))
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ListPaymentsByInvoice retrieves all payments recorded against an invoice.
func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, orgID string, invoiceID string) ([]domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE org_id = $1 AND invoice_id = $2 ORDER BY created_at`, paymentColumns)
	rows, err := r.db.Query(ctx, query, orgID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of invoice %s: %w", invoiceID, translatePgError(err))
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	return payments, rows.Err()
}

// SavePayment inserts a payment record.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := fmt.Sprintf(`
		INSERT INTO payments (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`, paymentColumns)
	_, err := r.db.Exec(ctx, query,
		m.PaymentID, m.OrgID, m.InvoiceID, m.Amount, m.CurrencyCode, m.Method, m.Status, m.Reference, m.Notes,
		m.RefundedAmount, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, translatePgError(err))
	}
	return nil
}

// UpdatePayment persists a payment state transition.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		UPDATE payments
		SET status = $3, reference = $4, notes = $5, refunded_amount = $6, last_updated_at = $7, last_updated_by = $8
		WHERE org_id = $1 AND payment_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.OrgID, m.PaymentID, m.Status, m.Reference, m.Notes, m.RefundedAmount, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, m.PaymentID)
	}
	return nil
}
