package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayOrderCommand_ValidInput(t *testing.T) {
	id, principal := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewPayOrderCommand(id, principal)

	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, principal, cmd.Principal())
}

func TestNewPayOrderCommand_MissingPrincipal(t *testing.T) {
	_, err := commands.NewPayOrderCommand(kernel.NewUUID(), kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "principal")
}

func TestNewCancelOrderCommand(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())

	_, err = commands.NewCancelOrderCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.CancelOrderCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
}

func TestNewRelayOutboxCommand(t *testing.T) {
	cmd, err := commands.NewRelayOutboxCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())

	for _, size := range []int{0, -1, 1001} {
		_, err = commands.NewRelayOutboxCommand(size)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}
