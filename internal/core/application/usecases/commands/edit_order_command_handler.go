package commands

import (
	"context"

	"storefront/internal/core/application/views"
	"storefront/internal/core/domain/services"
)

// EditOrderCommandHandler swaps the lines of a Pending order for a newly
// priced set and recomputes its total.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricer     services.LinePricer
	assembler  views.Assembler
}

func NewEditOrderCommandHandler(uowFactory OrderUoWFactory, catalog CatalogLookup) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewLinePricer(catalog),
		assembler:  views.NewAssembler(catalog),
	}
}

// Handle prices the replacement lines first, then locks the order and
// applies them. A non-Pending order fails with a status conflict and keeps
// its lines and total.
func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) (views.OrderView, error) {
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
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return views.OrderView{}, err
	}

	if err = o.ReplaceLines(priced.Lines); err != nil {
		return views.OrderView{}, err
	}

	if err = orderRepo.ReplaceLines(ctx, o); err != nil {
		return views.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.OrderView{}, err
	}

	return h.assembler.Assemble(ctx, o, priced.Items)
}
