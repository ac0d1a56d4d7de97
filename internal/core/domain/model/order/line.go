package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line was not created via NewLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// LineRequest is a buyer's request for quantity units of a product.
type LineRequest struct {
	ProductID catalog.ProductID
	Quantity  int
}

// Validate checks the product reference and quantity without touching the catalog.
func (r LineRequest) Validate() error {
	return errors.Join(r.ProductID.Validate(), validateQuantity(r.Quantity))
}

// ValidateLineRequests rejects an empty batch and joins every per-line failure,
// prefixing each with its position.
func ValidateLineRequests(requests []LineRequest) error {
	if len(requests) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	var all []error
	for i, r := range requests {
		if err := r.Validate(); err != nil {
			all = append(all, fmt.Errorf("line %d: %w", i, err))
		}
	}
	return errors.Join(all...)
}

// Line is one product of an order with the unit price captured when the line was created.
type Line struct {
	productID catalog.ProductID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewLine builds a line; unitPrice must come from the catalog at the time of the call.
func NewLine(productID catalog.ProductID, quantity int, unitPrice kernel.Money) (Line, error) {
	if err := errors.Join(
		productID.Validate(),
		validateQuantity(quantity),
		unitPrice.Validate(),
	); err != nil {
		return Line{}, err
	}

	return Line{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) ProductID() catalog.ProductID {
	return l.productID
}

func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice is the captured price, unaffected by later catalog changes.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total returns unit price × quantity.
func (l Line) Total() kernel.Money {
	return l.unitPrice.Multiply(l.quantity)
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
