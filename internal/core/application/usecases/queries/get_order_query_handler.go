package queries

import (
	"context"

	"storefront/internal/core/application/views"
	"storefront/internal/pkg/errs"
)

// GetOrderQueryHandler returns the view of a single order.
type GetOrderQueryHandler struct {
	orders    OrderReader
	assembler views.Assembler
}

func NewGetOrderQueryHandler(orders OrderReader, catalog CatalogLookup) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, assembler: views.NewAssembler(catalog)}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return views.OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return views.OrderView{}, err
	}

	if viewer, ownOnly := query.Viewer(); ownOnly && !o.IsOwnedBy(viewer) {
		return views.OrderView{}, errs.NewNotOwnerError("order", o.ID().String(), viewer.String())
	}

	return h.assembler.Assemble(ctx, o, nil)
}
