package commands

import (
	"context"

	"storefront/internal/core/application/views"
)

// PayOrderCommandHandler moves a Pending order to Completed.
//
// Example:
//
//	cmd, _ := NewPayOrderCommand(orderID, principal)
//	view, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrStatusConflict):
//	    // already paid or cancelled
//	case errors.Is(err, errs.ErrNotOwner):
//	    // principal does not own the order
//	}
type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	assembler  views.Assembler
}

func NewPayOrderCommandHandler(uowFactory OrderUoWFactory, catalog CatalogLookup) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		assembler:  views.NewAssembler(catalog),
	}
}

// Handle locks the order, applies the transition and stores it with a
// compare-and-swap on the status read under the lock. Catalog lookups for the
// returned view happen before Commit. Of two concurrent
// payments exactly one succeeds; the other sees Completed and conflicts.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (views.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return views.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return views.OrderView{}, err
	}

	expected := o.Status()
	if err = o.Pay(cmd.Principal()); err != nil {
		return views.OrderView{}, err
	}

	if err = orderRepo.UpdateStatus(ctx, o, expected); err != nil {
		return views.OrderView{}, err
	}

	// Display data is resolved while the change can still be rolled back: an
	// unavailable catalog must not turn a committed payment into a retryable error.
	items, err := h.assembler.Prefetch(ctx, o)
	if err != nil {
		return views.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.OrderView{}, err
	}

	return h.assembler.Assemble(ctx, o, items)
}
