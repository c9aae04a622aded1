package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/agencydesk/agency_management_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_management_app/internal/core/ports/repositories"
)

// AtomicCoordinator funnels every multi-record write through the unit of
// work. It is the only component allowed to persist more than one record per
// call, and it re-validates entity state inside the unit rather than trusting
// whatever the caller read before entering: between that read and the lock,
// another request may have transitioned the entity.
type AtomicCoordinator struct {
	uow portsrepo.UnitOfWork
}

// NewAtomicCoordinator creates a new AtomicCoordinator.
func NewAtomicCoordinator(uow portsrepo.UnitOfWork) *AtomicCoordinator {
	return &AtomicCoordinator{uow: uow}
}

// CreateInvoiceWithTransaction persists an invoice with its items and,
// optionally, a pending income ledger entry, in one atomic unit.
func (c *AtomicCoordinator) CreateInvoiceWithTransaction(ctx context.Context, invoice domain.Invoice, txn *domain.Transaction) error {
	return c.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Invoices.SaveInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
		}
		if txn != nil {
			if err := repos.Transactions.SaveTransaction(ctx, *txn); err != nil {
				return fmt.Errorf("failed to save transaction for invoice %s: %w", invoice.InvoiceID, err)
			}
		}
		return nil
	})
}

// CreateMonthlyInvoice persists one generated monthly invoice, re-checking
// existence for (org, client, month) inside the unit. Returns ErrDuplicate
// when the month is already billed, which the generator reports as a skip.
func (c *AtomicCoordinator) CreateMonthlyInvoice(ctx context.Context, invoice domain.Invoice) error {
	return c.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		exists, err := repos.Invoices.ExistsForClientMonth(ctx, invoice.OrgID, invoice.ClientID, invoice.BillingMonth)
		if err != nil {
			return fmt.Errorf("failed to check existing invoice for client %s month %s: %w", invoice.ClientID, invoice.BillingMonth, err)
		}
		if exists {
			return apperrors.ErrDuplicate
		}
		return repos.Invoices.SaveInvoice(ctx, invoice)
	})
}

// ApproveInvoicePayment marks the invoice PAID and records the confirmed
// income ledger entry together. The invoice is reloaded under a row lock and
// its state re-validated before either write happens.
func (c *AtomicCoordinator) ApproveInvoicePayment(ctx context.Context, orgID, invoiceID string, paidAt *time.Time, notes, userID string, now time.Time) (*domain.Invoice, *domain.Transaction, error) {
	var (
		updated *domain.Invoice
		created *domain.Transaction
	)
	err := c.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		invoice, err := repos.Invoices.FindInvoiceByIDForUpdate(ctx, orgID, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.ApprovePayment(paidAt, notes); err != nil {
			return err
		}
		invoice.Touch(userID, now)

		daysLate := invoice.DaysLate(*invoice.PaidAt)
		txn, err := domain.NewTransaction(
			uuid.NewString(), orgID,
			domain.Income, domain.SubtypeInvoicePayment,
			invoice.Total, *invoice.PaidAt,
			"payment of invoice "+invoice.Number,
		)
		if err != nil {
			return err
		}
		txn.InvoiceID = &invoice.InvoiceID
		txn.ClientID = &invoice.ClientID
		txn.DaysLate = &daysLate
		txn.AuditFields = domain.NewAuditFields(userID, now)
		if err := txn.Confirm(); err != nil {
			return err
		}

		if err := repos.Invoices.UpdateInvoiceStatus(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
		}
		if err := repos.Transactions.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save payment transaction for invoice %s: %w", invoiceID, err)
		}
		updated = invoice
		created = &txn
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, created, nil
}

// CancelInvoice cancels an open invoice and sweeps every pending ledger
// entry referencing it in the same atomic outcome.
func (c *AtomicCoordinator) CancelInvoice(ctx context.Context, orgID, invoiceID, reason, userID string, now time.Time) (*domain.Invoice, error) {
	var updated *domain.Invoice
	err := c.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		invoice, err := repos.Invoices.FindInvoiceByIDForUpdate(ctx, orgID, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.Cancel(reason, now); err != nil {
			return err
		}
		invoice.Touch(userID, now)

		pending, err := repos.Transactions.FindPendingByInvoiceID(ctx, orgID, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to load pending transactions of invoice %s: %w", invoiceID, err)
		}
		for i := range pending {
			if err := pending[i].Cancel(); err != nil {
				return err
			}
			pending[i].Touch(userID, now)
			if err := repos.Transactions.UpdateTransaction(ctx, pending[i]); err != nil {
				return fmt.Errorf("failed to cancel transaction %s: %w", pending[i].TransactionID, err)
			}
		}
		if err := repos.Invoices.UpdateInvoiceStatus(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MaterializeMonthlyCosts turns the org's active monthly cost items into
// pending EXPENSE ledger entries for the month, skipping (cost item, client)
// pairs that were already materialized. The whole month's batch is one unit.
func (c *AtomicCoordinator) MaterializeMonthlyCosts(ctx context.Context, orgID, month, userID string, now time.Time) (created int, skipped int, err error) {
	entryDate, err := firstDayOfMonth(month)
	if err != nil {
		return 0, 0, err
	}
	err = c.uow.Execute(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		items, err := repos.CostItems.ListActiveMonthlyCostItems(ctx, orgID)
		if err != nil {
			return fmt.Errorf("failed to list cost items: %w", err)
		}
		done, err := repos.Transactions.FindMaterializedCostKeys(ctx, orgID, month)
		if err != nil {
			return fmt.Errorf("failed to load materialized cost keys: %w", err)
		}

		var batch []domain.Transaction
		for _, item := range items {
			key := portsrepo.MaterializedCostKey{CostItemID: item.CostItemID}
			if item.ClientID != nil {
				key.ClientID = *item.ClientID
			}
			if done[key] {
				skipped++
				continue
			}
			txn, err := domain.NewTransaction(
				uuid.NewString(), orgID,
				domain.Expense, domain.SubtypeRecurringCost,
				item.Amount, entryDate,
				item.Name+" ("+month+")",
			)
			if err != nil {
				return err
			}
			costItemID := item.CostItemID
			txn.CostItemID = &costItemID
			txn.ClientID = item.ClientID
			txn.AuditFields = domain.NewAuditFields(userID, now)
			batch = append(batch, txn)
		}
		if len(batch) > 0 {
			if err := repos.Transactions.SaveTransactions(ctx, batch); err != nil {
				return fmt.Errorf("failed to save recurring cost transactions: %w", err)
			}
		}
		created = len(batch)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, skipped, nil
}

// firstDayOfMonth parses "YYYY-MM" into the UTC midnight of its first day.
func firstDayOfMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrValidation, month)
	}
	return t, nil
}
