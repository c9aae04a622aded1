package domain

import (
	"fmt"
	"time"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
)

// TransactionType indicates the direction of a ledger entry.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionSubtype qualifies where a ledger entry came from.
type TransactionSubtype string

const (
	SubtypeInvoicePayment TransactionSubtype = "INVOICE_PAYMENT"
	SubtypeRecurringCost  TransactionSubtype = "RECURRING_COST"
	SubtypeManual         TransactionSubtype = "MANUAL"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionConfirmed TransactionStatus = "CONFIRMED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// transactionEvent names a requested transition so illegal moves map to a
// specific error instead of a generic one.
type transactionEvent string

const (
	eventConfirm transactionEvent = "confirm"
	eventCancel  transactionEvent = "cancel"
)

// transactionTransitions enumerates every legal (state, event) pair. Anything
// absent from the table is rejected with the matching typed error.
var transactionTransitions = map[TransactionStatus]map[transactionEvent]TransactionStatus{
	TransactionPending: {
		eventConfirm: TransactionConfirmed,
		eventCancel:  TransactionCancelled,
	},
}

func transactionTransitionError(status TransactionStatus, event transactionEvent) error {
	switch {
	case event == eventConfirm && status == TransactionConfirmed:
		return apperrors.ErrAlreadyConfirmed
	case event == eventConfirm && status == TransactionCancelled:
		return apperrors.ErrCannotConfirmCancelled
	case event == eventCancel && status == TransactionConfirmed:
		return apperrors.ErrCannotCancelConfirmed
	case event == eventCancel && status == TransactionCancelled:
		return apperrors.ErrAlreadyCancelled
	}
	return fmt.Errorf("%w: illegal transition %s from %s", apperrors.ErrValidation, event, status)
}

// Transaction is a single ledger entry. Amounts are stored as positive
// magnitudes; direction lives in Type. Once confirmed the entry is immutable
// except for cancellation bookkeeping, and rows are only ever soft-deleted.
type Transaction struct {
	TransactionID string             `json:"transactionID"`
	OrgID         string             `json:"orgID"`
	Type          TransactionType    `json:"type"`
	Subtype       TransactionSubtype `json:"subtype"`
	Amount        Money              `json:"amount"`
	Status        TransactionStatus  `json:"status"`
	Date          time.Time          `json:"date"`
	Description   string             `json:"description"`
	InvoiceID     *string            `json:"invoiceID,omitempty"`
	ClientID      *string            `json:"clientID,omitempty"`
	CostItemID    *string            `json:"costItemID,omitempty"`
	DaysLate      *int               `json:"daysLate,omitempty"`
	DeletedAt     *time.Time         `json:"deletedAt,omitempty"`
	AuditFields
}

// NewTransaction validates and builds a PENDING ledger entry.
func NewTransaction(id, orgID string, txnType TransactionType, subtype TransactionSubtype, amount Money, date time.Time, description string) (Transaction, error) {
	if txnType != Income && txnType != Expense {
		return Transaction{}, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if orgID == "" {
		return Transaction{}, fmt.Errorf("%w: org ID is required", apperrors.ErrValidation)
	}
	return Transaction{
		TransactionID: id,
		OrgID:         orgID,
		Type:          txnType,
		Subtype:       subtype,
		Amount:        amount,
		Status:        TransactionPending,
		Date:          date,
		Description:   description,
	}, nil
}

func (t *Transaction) apply(event transactionEvent) error {
	next, ok := transactionTransitions[t.Status][event]
	if !ok {
		return transactionTransitionError(t.Status, event)
	}
	t.Status = next
	return nil
}

// Confirm moves PENDING to CONFIRMED, after which the entry is immutable.
func (t *Transaction) Confirm() error {
	return t.apply(eventConfirm)
}

// Cancel moves PENDING to CANCELLED.
func (t *Transaction) Cancel() error {
	return t.apply(eventCancel)
}

// UpdateDescription edits the free-text description. Rejected once confirmed.
func (t *Transaction) UpdateDescription(description string) error {
	if t.Status == TransactionConfirmed {
		return apperrors.ErrImmutableAfterConfirmation
	}
	t.Description = description
	return nil
}

// SoftDelete marks the entry deleted without removing the row. Deleted rows
// are excluded from every balance calculation.
func (t *Transaction) SoftDelete(at time.Time) {
	if t.DeletedAt == nil {
		t.DeletedAt = &at
	}
}

// IsDeleted reports whether the entry has been soft-deleted.
func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// CalculateBalance is the canonical net-balance computation: sum of income
// minus sum of expenses over non-deleted entries. Every balance the product
// reports must come from here. An empty list yields zero in fallbackCurrency.
func CalculateBalance(transactions []Transaction, fallbackCurrency string) (Money, error) {
	currency := fallbackCurrency
	for _, txn := range transactions {
		if !txn.IsDeleted() {
			currency = txn.Amount.Currency
			break
		}
	}
	balance := ZeroMoney(currency)
	for _, txn := range transactions {
		if txn.IsDeleted() {
			continue
		}
		var err error
		switch txn.Type {
		case Income:
			balance, err = balance.Add(txn.Amount)
		case Expense:
			balance, err = balance.Subtract(txn.Amount)
		default:
			err = fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txn.Type)
		}
		if err != nil {
			return Money{}, err
		}
	}
	return balance, nil
}
