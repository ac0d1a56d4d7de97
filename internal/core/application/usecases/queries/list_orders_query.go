package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrListOrdersForOwnerQueryIsNotConstructed = errors.New(
		"ListOrdersForOwnerQuery must be created via NewListOrdersForOwnerQuery constructor",
	)
	ErrListAllOrdersQueryIsNotConstructed = errors.New(
		"ListAllOrdersQuery must be created via NewListAllOrdersQuery constructor",
	)
)

// ListOrdersForOwnerQuery lists the orders placed by the acting principal.
type ListOrdersForOwnerQuery struct {
	owner kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOrdersForOwnerQuery(principal kernel.UUID) (ListOrdersForOwnerQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOrdersForOwnerQuery{}, errs.NewValueIsRequiredErrorWithCause("principal", err)
	}
	return ListOrdersForOwnerQuery{owner: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersForOwnerQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersForOwnerQueryIsNotConstructed)
}

func (q ListOrdersForOwnerQuery) Owner() kernel.UUID {
	return q.owner
}

// ListAllOrdersQuery lists every order in the store. Callers check the
// principal's role before issuing it.
type ListAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListAllOrdersQuery() ListAllOrdersQuery {
	return ListAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAllOrdersQueryIsNotConstructed)
}
