package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand replaces every line of a Pending order.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []order.LineRequest

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(orderID kernel.UUID, lines []order.LineRequest) (EditOrderCommand, error) {
	cmd := EditOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
	); err != nil {
		return EditOrderCommand{}, err
	}

	return cmd, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns a copy of the replacement lines.
func (c EditOrderCommand) Lines() []order.LineRequest {
	out := make([]order.LineRequest, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *EditOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setLines(lines []order.LineRequest) error {
	if err := order.ValidateLineRequests(lines); err != nil {
		return err
	}

	c.lines = make([]order.LineRequest, len(lines))
	copy(c.lines, lines)
	return nil
}
