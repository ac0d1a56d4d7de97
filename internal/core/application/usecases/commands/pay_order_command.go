package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand completes a Pending order on behalf of its owner.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	principal kernel.UUID

	guard guard.ConstructorGuard
}

func NewPayOrderCommand(orderID, principal kernel.UUID) (PayOrderCommand, error) {
	cmd := PayOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPrincipal(principal),
	); err != nil {
		return PayOrderCommand{}, err
	}

	return cmd, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Principal is the account acting on the order.
func (c PayOrderCommand) Principal() kernel.UUID {
	return c.principal
}

func (c *PayOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PayOrderCommand) setPrincipal(principal kernel.UUID) error {
	if err := principal.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("principal", err)
	}

	c.principal = principal
	return nil
}
