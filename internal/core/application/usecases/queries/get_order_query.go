package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order by identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct {
	orderID kernel.UUID
	viewer  kernel.UUID
	ownOnly bool

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetOwnOrderQuery fetches an order only if viewer owns it; any other
// viewer gets errs.NotOwnerError before the view is assembled.
func NewGetOwnOrderQuery(orderID, viewer kernel.UUID) (GetOrderQuery, error) {
	var validationErrors []error
	if err := orderID.Validate(); err != nil {
		validationErrors = append(validationErrors, err)
	}
	if err := viewer.Validate(); err != nil {
		validationErrors = append(validationErrors, errs.NewValueIsRequiredErrorWithCause("viewer", err))
	}
	if len(validationErrors) > 0 {
		return GetOrderQuery{}, errors.Join(validationErrors...)
	}

	return GetOrderQuery{
		orderID: orderID,
		viewer:  viewer,
		ownOnly: true,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Viewer returns the account the read is restricted to, if any.
func (q GetOrderQuery) Viewer() (kernel.UUID, bool) {
	return q.viewer, q.ownOnly
}
