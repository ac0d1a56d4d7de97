package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errRequestNotConstructed := errors.New("LineRequest must be created via newLineRequest")

	type lineRequest struct {
		productID int64
		quantity  int
		guard     guard.ConstructorGuard
	}

	newLineRequest := func(productID int64, quantity int) (lineRequest, error) {
		if quantity < 1 {
			return lineRequest{}, errors.New("quantity must be at least 1")
		}
		return lineRequest{productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		req, err := newLineRequest(7, 2)

		require.NoError(t, err)
		require.NoError(t, req.guard.Validate(errRequestNotConstructed))
		assert.Equal(t, int64(7), req.productID)
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		req := lineRequest{productID: 7, quantity: 2}

		assert.Equal(t, errRequestNotConstructed, req.guard.Validate(errRequestNotConstructed))
	})
}
