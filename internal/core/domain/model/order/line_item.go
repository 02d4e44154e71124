package order

import (
	"fmt"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"
)

// LineItem is one purchased product on an order. Line items are immutable
// once the order leaves Pending; this core never edits them, it only carries
// them through persistence.
type LineItem struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// NewLineItem creates a line item after validating the product reference,
// quantity (>= 1) and unit price (>= 0).
func NewLineItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	if err := unitPrice.Validate(); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the purchased product's identifier.
func (li LineItem) ProductID() kernel.UUID { return li.productID }

// Quantity returns the number of units purchased.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the price per unit at purchase time.
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }
