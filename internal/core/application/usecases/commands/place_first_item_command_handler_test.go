package commands_test

import (
	"errors"
	"testing"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceFirstItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceFirstItemCommand(caller(t, "alice", access.Customer), "alice", "Latte")
	require.NoError(t, err)

	menu := new(MockMenuCatalog)
	menu.On("Lookup", ctx, "Latte").Return(price(t, "3.50"), true, nil).Once()
	users := new(MockUserDirectory)

	repo := new(MockOrderRepository)
	allocator := new(MockAllocator)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderIDAllocator").Return(allocator).Once(),
		allocator.On("Allocate", ctx).Return(order.ID(1), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID() == 1 && o.Owner() == "alice" && len(o.Items()) == 1 && !o.IsPaid()
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceFirstItemCommandHandler(factory, menu, users)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ID(1), result.OrderID)
	assert.Equal(t, "3.50", result.Total.String())
	users.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	menu.AssertExpectations(t)
	repo.AssertExpectations(t)
	allocator.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceFirstItemCommandHandler_Handle_StaffForExistingCustomer(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceFirstItemCommand(caller(t, "emma", access.Employee), "alice", "Muffin")

	users := new(MockUserDirectory)
	users.On("Exists", ctx, "alice").Return(true, nil).Once()
	menu := new(MockMenuCatalog)
	menu.On("Lookup", ctx, "Muffin").Return(price(t, "2.25"), true, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool { return o.Owner() == "alice" })).Return(nil).Once()
	allocator := new(MockAllocator)
	allocator.On("Allocate", ctx).Return(order.ID(7), nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderIDAllocator").Return(allocator).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceFirstItemCommandHandler(factory, menu, users)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ID(7), result.OrderID)
	users.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestPlaceFirstItemCommandHandler_Handle_FailsBeforeAnyWrite(t *testing.T) {
	testCases := []struct {
		name      string
		caller    access.Role
		login     string
		owner     string
		exists    bool
		onMenu    bool
		expectErr error
	}{
		{"customer for someone else", access.Customer, "bob", "alice", true, true, errs.ErrForbidden},
		{"staff for unknown login", access.Manager, "mia", "ghost", false, true, errs.ErrObjectNotFound},
		{"item not on the menu", access.Customer, "alice", "alice", true, false, errs.ErrItemNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewPlaceFirstItemCommand(caller(t, tc.login, tc.caller), tc.owner, "Scone")
			require.NoError(t, err)

			users := new(MockUserDirectory)
			users.On("Exists", ctx, tc.owner).Return(tc.exists, nil).Maybe()
			menu := new(MockMenuCatalog)
			menu.On("Lookup", ctx, "Scone").Return(kernel.Money{}, tc.onMenu, nil).Maybe()
			factory := new(MockPlaceOrderUoWFactory)

			h := commands.NewPlaceFirstItemCommandHandler(factory, menu, users)
			_, err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, tc.expectErr)
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestPlaceFirstItemCommandHandler_Handle_AllocationFailed(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceFirstItemCommand(caller(t, "alice", access.Customer), "alice", "Latte")

	menu := new(MockMenuCatalog)
	menu.On("Lookup", ctx, "Latte").Return(price(t, "3.50"), true, nil).Once()

	repo := new(MockOrderRepository)
	allocator := new(MockAllocator)
	allocator.On("Allocate", ctx).Return(order.ID(0), errs.NewAllocationFailedError(errors.New("sequence missing"))).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderIDAllocator").Return(allocator).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceFirstItemCommandHandler(factory, menu, new(MockUserDirectory))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAllocationFailed)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceFirstItemCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceFirstItemCommand(caller(t, "alice", access.Customer), "alice", "Latte")

	menu := new(MockMenuCatalog)
	menu.On("Lookup", ctx, "Latte").Return(price(t, "3.50"), true, nil).Once()
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	allocator := new(MockAllocator)
	allocator.On("Allocate", ctx).Return(order.ID(3), nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderIDAllocator").Return(allocator).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(errs.NewStorageUnavailableError("commit transaction")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceFirstItemCommandHandler(factory, menu, new(MockUserDirectory))
	result, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	assert.Zero(t, result.OrderID)
}

func TestPlaceFirstItemCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockPlaceOrderUoWFactory)
	h := commands.NewPlaceFirstItemCommandHandler(factory, new(MockMenuCatalog), new(MockUserDirectory))

	_, err := h.Handle(t.Context(), commands.PlaceFirstItemCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceFirstItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
