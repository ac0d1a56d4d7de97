package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogItem(t *testing.T, id catalog.ProductID, price, name string) catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(id, kernel.MustMoney(price), name, "https://img/"+id.String(), "Phalaenopsis")
	require.NoError(t, err)
	return item
}

func newCreateCommand(t *testing.T, requester kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(requester, []order.LineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	requester, orderID := kernel.NewUUID(), kernel.NewUUID()
	cmd := newCreateCommand(t, requester)

	cat := new(MockCatalog)
	cat.On("Resolve", ctx, catalog.ProductID(1)).Return(catalogItem(t, 1, "10.0", "A"), nil).Once()
	cat.On("Resolve", ctx, catalog.ProductID(2)).Return(catalogItem(t, 2, "15.0", "B"), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("NextIdentity").Return(orderID).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, cat)
	view, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, orderID, view.ID)
	assert.Equal(t, requester, view.AccountID)
	assert.Equal(t, order.Pending, view.Status)
	assert.Equal(t, "35.00", view.Total.String())
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "A", view.Lines[0].Name)
	assert.False(t, view.CreatedAt.IsZero())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	cat.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockCatalog))

	_, err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownProductPersistsNothing(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t, kernel.NewUUID())

	cat := new(MockCatalog)
	cat.On("Resolve", ctx, catalog.ProductID(1)).Return(catalogItem(t, 1, "10", "A"), nil).Once()
	cat.On("Resolve", ctx, catalog.ProductID(2)).
		Return(catalog.Item{}, errs.NewObjectNotFoundError("productId", 2)).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, cat)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t, kernel.NewUUID())

	cat := new(MockCatalog)
	cat.On("Resolve", ctx, mock.Anything).Return(catalogItem(t, 1, "1", "A"), nil)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, cat)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t, kernel.NewUUID())

	cat := new(MockCatalog)
	cat.On("Resolve", ctx, mock.Anything).Return(catalogItem(t, 1, "1", "A"), nil)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("NextIdentity").Return(kernel.NewUUID()).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, cat)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t, kernel.NewUUID())

	cat := new(MockCatalog)
	cat.On("Resolve", ctx, mock.Anything).Return(catalogItem(t, 1, "1", "A"), nil)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("NextIdentity").Return(kernel.NewUUID()).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, cat)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
