package queries

import (
	"context"

	"storefront/internal/core/application/views"
)

// ListOrdersQueryHandler serves both the per-owner and the full listing.
// Results are ordered oldest first.
type ListOrdersQueryHandler struct {
	orders    OrderReader
	assembler views.Assembler
}

func NewListOrdersQueryHandler(orders OrderReader, catalog CatalogLookup) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, assembler: views.NewAssembler(catalog)}
}

func (h ListOrdersQueryHandler) HandleForOwner(
	ctx context.Context,
	query ListOrdersForOwnerQuery,
) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListByOwner(ctx, query.Owner())
	if err != nil {
		return nil, err
	}

	return h.assembler.AssembleAll(ctx, orders)
}

func (h ListOrdersQueryHandler) HandleAll(ctx context.Context, query ListAllOrdersQuery) ([]views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return h.assembler.AssembleAll(ctx, orders)
}
