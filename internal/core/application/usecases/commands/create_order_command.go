package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(principal, []order.LineRequest{
//	    {ProductID: 42, Quantity: 2},
//	    {ProductID: 7, Quantity: 1},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	view, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	requester kernel.UUID
	lines     []order.LineRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the requester and every line request.
// Nothing is looked up in the catalog here.
func NewCreateOrderCommand(requester kernel.UUID, lines []order.LineRequest) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequester(requester),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Requester returns the account placing the order.
func (c CreateOrderCommand) Requester() kernel.UUID {
	return c.requester
}

// Lines returns a copy of the requested lines in entry order.
func (c CreateOrderCommand) Lines() []order.LineRequest {
	out := make([]order.LineRequest, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CreateOrderCommand) setRequester(requester kernel.UUID) error {
	if err := requester.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester", err)
	}

	c.requester = requester
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.LineRequest) error {
	if err := order.ValidateLineRequests(lines); err != nil {
		return err
	}

	c.lines = make([]order.LineRequest, len(lines))
	copy(c.lines, lines)
	return nil
}
