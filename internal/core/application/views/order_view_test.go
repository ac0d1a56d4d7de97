package views_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/views"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogResolver struct{ mock.Mock }

func (m *MockCatalogResolver) Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Item), args.Error(1)
}

func newOrder(t *testing.T, products ...catalog.ProductID) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(products))
	for _, p := range products {
		l, err := order.NewLine(p, 2, kernel.MustMoney("10"))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), lines, time.Now())
	require.NoError(t, err)
	return o
}

func TestAssembler_Assemble_UsesCapturedPriceAndLiveName(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, 1)
	resolver := new(MockCatalogResolver)
	repriced, err := catalog.NewItem(1, kernel.MustMoney("99"), "Vanda Blue", "https://img/1", "Vanda")
	require.NoError(t, err)
	resolver.On("Resolve", ctx, catalog.ProductID(1)).Return(repriced, nil).Once()

	view, err := views.NewAssembler(resolver).Assemble(ctx, o, nil)

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	line := view.Lines[0]
	assert.Equal(t, "Vanda Blue", line.Name)
	assert.Equal(t, "Vanda", line.Category)
	assert.Equal(t, "https://img/1", line.URL)
	assert.Equal(t, "10.00", line.UnitPrice.String())
	assert.Equal(t, "20.00", line.Total.String())
	assert.Equal(t, "20.00", view.Total.String())
	assert.True(t, view.AccountID.IsEqual(o.Owner()))
	assert.Equal(t, order.Pending, view.Status)
	resolver.AssertExpectations(t)
}

func TestAssembler_Assemble_ReusesKnownItems(t *testing.T) {
	o := newOrder(t, 1)
	resolver := new(MockCatalogResolver)
	known, err := catalog.NewItem(1, kernel.MustMoney("10"), "Cattleya", "", "")
	require.NoError(t, err)

	view, err := views.NewAssembler(resolver).Assemble(t.Context(), o, map[catalog.ProductID]catalog.Item{1: known})

	require.NoError(t, err)
	assert.Equal(t, "Cattleya", view.Lines[0].Name)
	assert.Equal(t, catalog.UnknownLabel, view.Lines[0].Category)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestAssembler_Assemble_RemovedProductFallsBack(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, 7)
	resolver := new(MockCatalogResolver)
	resolver.On("Resolve", ctx, catalog.ProductID(7)).
		Return(catalog.Item{}, errs.NewObjectNotFoundError("productId", 7)).Once()

	view, err := views.NewAssembler(resolver).Assemble(ctx, o, nil)

	require.NoError(t, err)
	assert.Equal(t, catalog.UnknownLabel, view.Lines[0].Name)
	assert.Equal(t, catalog.UnknownLabel, view.Lines[0].Category)
	assert.Equal(t, "20.00", view.Lines[0].Total.String())
}

func TestAssembler_Assemble_UnavailableCatalogFails(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, 7)
	resolver := new(MockCatalogResolver)
	resolver.On("Resolve", ctx, catalog.ProductID(7)).
		Return(catalog.Item{}, errs.NewUnavailableError("catalog")).Once()

	_, err := views.NewAssembler(resolver).Assemble(ctx, o, nil)

	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestAssembler_AssembleAll_ResolvesEachProductOnce(t *testing.T) {
	ctx := t.Context()
	first, second := newOrder(t, 1, 2), newOrder(t, 2)
	resolver := new(MockCatalogResolver)
	one, _ := catalog.NewItem(1, kernel.MustMoney("1"), "One", "", "A")
	two, _ := catalog.NewItem(2, kernel.MustMoney("2"), "Two", "", "B")
	resolver.On("Resolve", ctx, catalog.ProductID(1)).Return(one, nil).Once()
	resolver.On("Resolve", ctx, catalog.ProductID(2)).Return(two, nil).Once()

	out, err := views.NewAssembler(resolver).AssembleAll(ctx, []*order.Order{first, second})

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Two", out[1].Lines[0].Name)
	resolver.AssertExpectations(t)
}

func TestAssembler_Assemble_RejectsUnconstructedOrder(t *testing.T) {
	_, err := views.NewAssembler(new(MockCatalogResolver)).Assemble(t.Context(), &order.Order{}, nil)

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func TestAssembler_Prefetch_ThenAssembleMakesNoLookups(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, 1, 2, 1)
	item, err := catalog.NewItem(1, kernel.MustMoney("10"), "Cattleya", "https://img/1", "Cattleya")
	require.NoError(t, err)
	resolver := new(MockCatalogResolver)
	resolver.On("Resolve", ctx, catalog.ProductID(1)).Return(item, nil).Once()
	resolver.On("Resolve", ctx, catalog.ProductID(2)).
		Return(catalog.Item{}, errs.NewObjectNotFoundError("product", 2)).Once()
	assembler := views.NewAssembler(resolver)

	items, err := assembler.Prefetch(ctx, o)
	require.NoError(t, err)
	view, err := assembler.Assemble(ctx, o, items)

	require.NoError(t, err)
	require.Len(t, view.Lines, 3)
	assert.Equal(t, "Cattleya", view.Lines[0].Name)
	assert.Equal(t, catalog.UnknownLabel, view.Lines[1].Name)
	resolver.AssertExpectations(t)
}

func TestAssembler_Prefetch_UnavailableCatalogFails(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, 1)
	resolver := new(MockCatalogResolver)
	resolver.On("Resolve", ctx, catalog.ProductID(1)).
		Return(catalog.Item{}, errs.NewUnavailableError("catalog")).Once()

	_, err := views.NewAssembler(resolver).Prefetch(ctx, o)

	require.ErrorIs(t, err, errs.ErrUnavailable)
}
