package catalog

import (
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// UnknownLabel is shown in place of a category or product name that no longer resolves.
const UnknownLabel = "Unknown"

// ProductID identifies a catalog product. Valid identifiers are positive.
type ProductID int64

// Validate rejects non-positive identifiers.
func (id ProductID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Item is the current state of a catalog product as seen at lookup time.
// UnitPrice is live: orders copy it into their lines instead of referencing it.
type Item struct {
	ID            ProductID
	UnitPrice     kernel.Money
	Name          string
	URL           string
	CategoryLabel string
}

// NewItem validates the identifier and price; display fields may be empty.
func NewItem(id ProductID, unitPrice kernel.Money, name, url, categoryLabel string) (Item, error) {
	if err := errors.Join(id.Validate(), unitPrice.Validate()); err != nil {
		return Item{}, err
	}
	return Item{
		ID:            id,
		UnitPrice:     unitPrice,
		Name:          name,
		URL:           url,
		CategoryLabel: categoryLabel,
	}, nil
}

// Category returns the category label, or UnknownLabel when the category was removed.
func (i Item) Category() string {
	if i.CategoryLabel == "" {
		return UnknownLabel
	}
	return i.CategoryLabel
}
