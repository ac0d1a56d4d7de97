package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	requester := kernel.NewUUID()
	lines := []order.LineRequest{{ProductID: 1, Quantity: 2}}

	cmd, err := commands.NewCreateOrderCommand(requester, lines)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, requester, cmd.Requester())
	assert.Equal(t, lines, cmd.Lines())
}

func TestNewCreateOrderCommand_CopiesLines(t *testing.T) {
	lines := []order.LineRequest{{ProductID: 1, Quantity: 2}}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), lines)
	require.NoError(t, err)

	lines[0].Quantity = 100

	assert.Equal(t, 2, cmd.Lines()[0].Quantity)
}

func TestNewCreateOrderCommand_InvalidRequester(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, []order.LineRequest{{ProductID: 1, Quantity: 1}})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "requester")
}

func TestNewCreateOrderCommand_EmptyLines(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nil)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_NonPositiveQuantity(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []order.LineRequest{{ProductID: 1, Quantity: 0}})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
