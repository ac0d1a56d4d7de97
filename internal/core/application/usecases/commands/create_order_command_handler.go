package commands

import (
	"context"
	"time"

	"storefront/internal/core/application/views"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// CreateOrderCommandHandler prices the requested lines against the catalog and
// persists a Pending order with them.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalogLookup)
//	cmd, _ := NewCreateOrderCommand(principal, lines)
//
//	view, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(view.Total) // sum of captured price × quantity
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricer     services.LinePricer
	assembler  views.Assembler
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, catalog CatalogLookup) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewLinePricer(catalog),
		assembler:  views.NewAssembler(catalog),
		now:        time.Now,
	}
}

// Handle resolves every line before opening the transaction, so an unknown
// product or an unavailable catalog leaves nothing behind.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (views.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return views.OrderView{}, err
	}

	priced, err := h.pricer.Price(ctx, cmd.Lines())
	if err != nil {
		return views.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return views.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := order.NewOrder(orderRepo.NextIdentity(), cmd.Requester(), priced.Lines, h.now().UTC())
	if err != nil {
		return views.OrderView{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return views.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.OrderView{}, err
	}

	return h.assembler.Assemble(ctx, o, priced.Items)
}
