package order

import (
	"errors"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

// ErrGrandTotalMismatch indicates that a persisted grand total does not equal
// subtotal + shipping + tax - discount.
var ErrGrandTotalMismatch = errors.New("grand total does not match its components")

// Totals holds the monetary breakdown of an order. The grand total is
// derived, never independently settable: it always equals
// subtotal + shipping + tax - discount.
type Totals struct {
	subtotal   kernel.Money
	shipping   kernel.Money
	tax        kernel.Money
	discount   kernel.Money
	grandTotal kernel.Money
}

// NewTotals builds Totals from its components, deriving the grand total.
// Returns an error if any component is negative or the discount exceeds the
// sum of the other components.
func NewTotals(subtotal, shipping, tax, discount kernel.Money) (Totals, error) {
	if err := errors.Join(
		subtotal.Validate(),
		shipping.Validate(),
		tax.Validate(),
		discount.Validate(),
	); err != nil {
		return Totals{}, err
	}

	grand := subtotal.Add(shipping).Add(tax).Sub(discount)
	if err := grand.Validate(); err != nil {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause("totals", err)
	}

	return Totals{
		subtotal:   subtotal,
		shipping:   shipping,
		tax:        tax,
		discount:   discount,
		grandTotal: grand,
	}, nil
}

// RestoreTotals rebuilds Totals from persistence, verifying that the stored
// grand total matches its components.
func RestoreTotals(subtotal, shipping, tax, discount, grandTotal kernel.Money) (Totals, error) {
	totals, err := NewTotals(subtotal, shipping, tax, discount)
	if err != nil {
		return Totals{}, err
	}
	if !totals.grandTotal.IsEqual(grandTotal) {
		return Totals{}, ErrGrandTotalMismatch
	}
	return totals, nil
}

// Subtotal returns the sum of line item prices.
func (t Totals) Subtotal() kernel.Money { return t.subtotal }

// Shipping returns the shipping charge.
func (t Totals) Shipping() kernel.Money { return t.shipping }

// Tax returns the tax amount.
func (t Totals) Tax() kernel.Money { return t.tax }

// Discount returns the discount applied to the order.
func (t Totals) Discount() kernel.Money { return t.discount }

// GrandTotal returns the derived total payable.
func (t Totals) GrandTotal() kernel.Money { return t.grandTotal }
