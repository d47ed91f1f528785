package commands_test

import (
	"testing"
	"time"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddItemToOpenOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, 1, "alice", map[string]string{"Latte": "3.50"})
	cmd, err := commands.NewAddItemToOpenOrderCommand(caller(t, "alice", access.Customer), 1, "Muffin")
	require.NoError(t, err)

	menu := new(MockMenuCatalog)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, order.ID(1)).Return(o, nil).Once(),
		menu.On("Lookup", ctx, "Muffin").Return(price(t, "2.25"), true, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToOpenOrderCommandHandler(factory, menu)
	total, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "5.75", total.String())
	assert.Len(t, o.Items(), 2)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	menu.AssertExpectations(t)
}

func TestAddItemToOpenOrderCommandHandler_Handle_LeavesOrderUntouched(t *testing.T) {
	paid := existingOrder(t, 2, "alice", map[string]string{"Latte": "3.50"})
	paid.SetPaymentStatus(true, time.Now().UTC())

	testCases := []struct {
		name      string
		order     *order.Order
		loadErr   error
		login     string
		onMenu    bool
		expectErr error
	}{
		{"unknown order", nil, errs.NewObjectNotFoundError("order", "9"), "alice", true, errs.ErrObjectNotFound},
		{"somebody else's order", existingOrder(t, 3, "alice", nil), nil, "bob", true, errs.ErrForbidden},
		{"paid order", paid, nil, "alice", true, errs.ErrOrderClosed},
		{"item not on the menu", existingOrder(t, 4, "alice", nil), nil, "alice", false, errs.ErrItemNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewAddItemToOpenOrderCommand(caller(t, tc.login, access.Customer), 9, "Scone")
			require.NoError(t, err)

			menu := new(MockMenuCatalog)
			menu.On("Lookup", ctx, "Scone").Return(kernel.Money{}, tc.onMenu, nil).Maybe()
			repo := new(MockOrderRepository)
			repo.On("GetForUpdate", ctx, order.ID(9)).Return(tc.order, tc.loadErr).Once()
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewAddItemToOpenOrderCommandHandler(factory, menu)
			_, err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, tc.expectErr)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			uow.AssertExpectations(t)
		})
	}

	assert.Len(t, paid.Items(), 1)
	assert.Equal(t, "3.50", paid.Total().String())
}

func TestAddItemToOpenOrderCommandHandler_Handle_PaidOrderSkipsMenu(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, 1, "alice", map[string]string{"Latte": "3.50"})
	o.SetPaymentStatus(true, time.Now().UTC())
	cmd, _ := commands.NewAddItemToOpenOrderCommand(caller(t, "alice", access.Customer), 1, "Muffin")

	menu := new(MockMenuCatalog)
	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, order.ID(1)).Return(o, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToOpenOrderCommandHandler(factory, menu)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrOrderClosed)
	menu.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestAddItemToOpenOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, 1, "alice", nil)
	cmd, _ := commands.NewAddItemToOpenOrderCommand(caller(t, "alice", access.Customer), 1, "Muffin")

	menu := new(MockMenuCatalog)
	menu.On("Lookup", ctx, "Muffin").Return(price(t, "2.25"), true, nil).Once()
	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, order.ID(1)).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(errs.NewStorageUnavailableError("update order")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToOpenOrderCommandHandler(factory, menu)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestAddItemToOpenOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAddItemToOpenOrderCommand(caller(t, "alice", access.Customer), 1, "Muffin")

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errs.NewStorageUnavailableError("begin transaction")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToOpenOrderCommandHandler(factory, new(MockMenuCatalog))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
	uow.AssertNotCalled(t, "OrderRepository")
}
