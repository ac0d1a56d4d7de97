package commands

import (
	"context"
)

// CancelOrderCommandHandler moves an order to Cancelled. Completed orders are
// cancellable too; there is no status precondition.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := o.Status()
	if err = o.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.UpdateStatus(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
