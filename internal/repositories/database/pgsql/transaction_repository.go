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

type PgxTransactionRepository struct {
	db querier
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(db querier) *PgxTransactionRepository {
	return &PgxTransactionRepository{db: db}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, org_id, type, subtype, amount, currency_code, status, date, description,
	invoice_id, client_id, cost_item_id, days_late, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.OrgID, &m.Type, &m.Subtype, &m.Amount, &m.CurrencyCode, &m.Status, &m.Date, &m.Description,
		&m.InvoiceID, &m.ClientID, &m.CostItemID, &m.DaysLate, &m.DeletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	return txns, rows.Err()
}

// FindTransactionByID retrieves a ledger entry scoped to the org.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE org_id = $1 AND transaction_id = $2`, transactionColumns)
	m, err := scanTransaction(r.db.QueryRow(ctx, query, orgID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, translatePgError(err))
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByOrg retrieves a page of non-deleted ledger entries
// ordered by entry date descending, using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByOrg(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE org_id = $1 AND deleted_at IS NULL`, transactionColumns)
	args := []any{orgID}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT %d`, limit+1)

	ms, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions of org %s: %w", orgID, err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return mapping.ToDomainTransactionSlice(ms), token, nil
}

// ListTransactionsForBalance retrieves every non-deleted entry of the org.
func (r *PgxTransactionRepository) ListTransactionsForBalance(ctx context.Context, orgID string) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE org_id = $1 AND deleted_at IS NULL ORDER BY date, created_at`, transactionColumns)
	ms, err := r.queryTransactions(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of org %s for balance: %w", orgID, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// FindPendingByInvoiceID retrieves the org's PENDING entries referencing an
// invoice, so a cancellation can sweep them in the same atomic unit.
func (r *PgxTransactionRepository) FindPendingByInvoiceID(ctx context.Context, orgID string, invoiceID string) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE org_id = $1 AND invoice_id = $2 AND status = 'PENDING' AND deleted_at IS NULL
		ORDER BY created_at`, transactionColumns)
	ms, err := r.queryTransactions(ctx, query, orgID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending transactions of invoice %s: %w", invoiceID, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// FindMaterializedCostKeys reports which (cost item, client) pairs already
// have a RECURRING_COST entry dated inside the month.
func (r *PgxTransactionRepository) FindMaterializedCostKeys(ctx context.Context, orgID string, month string) (map[portsrepo.MaterializedCostKey]bool, error) {
	query := `
		SELECT cost_item_id, client_id
		FROM transactions
		WHERE org_id = $1 AND subtype = 'RECURRING_COST' AND deleted_at IS NULL
		  AND to_char(date, 'YYYY-MM') = $2;
	`
	rows, err := r.db.Query(ctx, query, orgID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load materialized cost keys for org %s month %s: %w", orgID, month, translatePgError(err))
	}
	defer rows.Close()

	keys := make(map[portsrepo.MaterializedCostKey]bool)
	for rows.Next() {
		var costItemID, clientID *string
		if err := rows.Scan(&costItemID, &clientID); err != nil {
			return nil, fmt.Errorf("failed to scan materialized cost key: %w", err)
		}
		key := portsrepo.MaterializedCostKey{}
		if costItemID != nil {
			key.CostItemID = *costItemID
		}
		if clientID != nil {
			key.ClientID = *clientID
		}
		keys[key] = true
	}
	return keys, rows.Err()
}

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, org_id, type, subtype, amount, currency_code, status, date, description,
		invoice_id, client_id, cost_item_id, days_late, deleted_at,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`

func (r *PgxTransactionRepository) insertTransaction(ctx context.Context, m models.Transaction) error {
	_, err := r.db.Exec(ctx, insertTransactionQuery,
		m.TransactionID, m.OrgID, m.Type, m.Subtype, m.Amount, m.CurrencyCode, m.Status, m.Date, m.Description,
		m.InvoiceID, m.ClientID, m.CostItemID, m.DaysLate, m.DeletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, translatePgError(err))
	}
	return nil
}

// SaveTransaction inserts one ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.insertTransaction(ctx, mapping.ToModelTransaction(txn))
}

// SaveTransactions inserts a batch of ledger entries.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	for _, txn := range txns {
		if err := r.insertTransaction(ctx, mapping.ToModelTransaction(txn)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTransaction persists status, description and soft-delete changes.
// Amount, type and references stay immutable after creation.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET status = $3, description = $4, deleted_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE org_id = $1 AND transaction_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.OrgID, m.TransactionID, m.Status, m.Description, m.DeletedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}
