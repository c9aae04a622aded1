package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a monetary amount that is non-finite, unparseable,
// or outside the range an operation allows (e.g. non-positive ledger amounts).
var ErrInvalidAmount = errors.New("invalid monetary amount")

// ErrCurrencyMismatch indicates an arithmetic or comparison attempt between two
// monetary values of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Ledger entry (transaction) state machine violations.
var (
	ErrAlreadyConfirmed           = errors.New("transaction is already confirmed")
	ErrAlreadyCancelled           = errors.New("already cancelled")
	ErrCannotConfirmCancelled     = errors.New("cannot confirm a cancelled transaction")
	ErrCannotCancelConfirmed      = errors.New("cannot cancel a confirmed transaction")
	ErrImmutableAfterConfirmation = errors.New("transaction is immutable after confirmation")
)

// ErrInstallmentAlreadyConfirmed indicates a settle attempt on an installment
// that was already settled.
var ErrInstallmentAlreadyConfirmed = errors.New("installment is already confirmed")

// Invoice state machine violations.
var (
	ErrAlreadyPaid        = errors.New("invoice is already paid")
	ErrCannotPayCancelled = errors.New("cannot approve payment on a cancelled invoice")
	ErrCannotCancelPaid   = errors.New("cannot cancel a paid invoice")
)

// ErrConcurrentModification indicates that re-validation inside an atomic unit
// found the entity in a different state than the caller observed. Retryable.
var ErrConcurrentModification = errors.New("entity was modified concurrently")

// ErrTimeout indicates that an atomic unit exceeded its lock-wait or execution
// timeout and was rolled back in full. Retryable.
var ErrTimeout = errors.New("operation timed out")

// IsRetryable reports whether the caller may safely retry the operation.
// Business-rule violations are never retryable; infrastructure failures are.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrConcurrentModification)
}
