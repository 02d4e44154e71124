package kernel

import (
	"fmt"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

// Money is a value object representing a non-negative monetary amount in
// minor currency units (cents). Order totals and line item prices are
// expressed as Money so arithmetic stays exact.
//
// The zero value is a valid amount of zero. Money is immutable; arithmetic
// operations return new values.
//
// Example:
//
//	subtotal, _ := kernel.NewMoney(12550) // 125.50
//	shipping, _ := kernel.NewMoney(500)
//	total := subtotal.Add(shipping)
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in minor units.
// Returns an error for negative amounts.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", cents))
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts. The result may be negative and
// is expected to be validated by the caller where a negative value is illegal.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Validate checks that the amount is non-negative.
func (m Money) Validate() error {
	if m.cents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", m.cents))
	}
	return nil
}

// String formats the amount as a decimal with two fractional digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
