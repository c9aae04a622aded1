package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
)

const (
	defaultLockTimeout = 5 * time.Second
	defaultExecTimeout = 10 * time.Second
)

// PgxUnitOfWork runs closures of repository calls inside one read-committed
// transaction. Lock acquisition is bounded by the lock timeout and the whole
// unit by the execution timeout; exceeding either rolls back in full and
// surfaces apperrors.ErrTimeout.
type PgxUnitOfWork struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
	execTimeout time.Duration
}

// NewPgxUnitOfWork creates a unit of work over the pool. Non-positive
// timeouts fall back to the defaults.
func NewPgxUnitOfWork(pool *pgxpool.Pool, lockTimeout, execTimeout time.Duration) *PgxUnitOfWork {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	if execTimeout <= 0 {
		execTimeout = defaultExecTimeout
	}
	return &PgxUnitOfWork{pool: pool, lockTimeout: lockTimeout, execTimeout: execTimeout}
}

// Ensure PgxUnitOfWork implements portsrepo.UnitOfWork
var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// newTxRepositories binds every repository to the transaction so writes made
// through them commit or roll back together.
func newTxRepositories(tx pgx.Tx) portsrepo.TxRepositories {
	return portsrepo.TxRepositories{
		Invoices:     newPgxInvoiceRepository(tx),
		Transactions: newPgxTransactionRepository(tx),
		Payments:     newPgxPaymentRepository(tx),
		Clients:      newPgxClientRepository(tx),
		Installments: newPgxInstallmentRepository(tx),
		CostItems:    newPgxCostItemRepository(tx),
	}
}

// Execute runs the closure with all-or-nothing semantics.
func (u *PgxUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.execTimeout)
	defer cancel()

	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin atomic unit: %w", translatePgError(err))
	}
	defer func() {
		// no-op when already committed
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	lockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, lockTimeout); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", translatePgError(err))
	}

	if err := fn(ctx, newTxRepositories(tx)); err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: atomic unit exceeded %s", apperrors.ErrTimeout, u.execTimeout)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit atomic unit: %w", translatePgError(err))
	}
	return nil
}
