package domain

import (
	"fmt"
	"math"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places kept for monetary amounts.
// Two places covers BRL and every other currency the product bills in.
const MinorUnitPlaces = 2

// Money is an immutable monetary amount paired with its ISO-4217 currency
// code. All arithmetic returns new values and requires matching currencies.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney builds a Money from a decimal amount, rounding to the configured
// minor-unit precision.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, fmt.Errorf("%w: currency code must be 3 letters, got %q", apperrors.ErrValidation, currency)
	}
	return Money{Amount: amount.Round(MinorUnitPlaces), Currency: currency}, nil
}

// NewMoneyFromFloat builds a Money from a float, rejecting NaN and infinities.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("%w: non-finite value", apperrors.ErrInvalidAmount)
	}
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromString parses a decimal string such as "1499.90".
func NewMoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, amount)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return nil
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// Equal compares by (amount, currency).
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// Cmp orders two amounts of the same currency: -1, 0 or +1.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(other.Amount), nil
}

// ToNumber returns the amount as a float64 for display purposes only; never
// feed the result back into arithmetic.
func (m Money) ToNumber() float64 {
	f, _ := m.Amount.Float64()
	return f
}

// String renders like "149.90 BRL".
func (m Money) String() string {
	return m.Amount.StringFixed(MinorUnitPlaces) + " " + m.Currency
}
