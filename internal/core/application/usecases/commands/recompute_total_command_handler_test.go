package commands_test

import (
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

func TestRecomputeTotalCommandHandler_Handle_RepairsStoredTotal(t *testing.T) {
	ctx := t.Context()
	now := existingOrder(t, 1, "alice", nil).CreatedAt()
	latte, err := order.RestoreLineItem(kernel.NewUUID(), "Latte", price(t, "3.50"), order.NotStarted, "", now, now)
	require.NoError(t, err)
	muffin, err := order.RestoreLineItem(kernel.NewUUID(), "Muffin", price(t, "2.25"), order.NotStarted, "", now, now)
	require.NoError(t, err)
	o, err := order.RestoreOrder(1, "alice", now, false, price(t, "9.99"), []*order.LineItem{latte, muffin})
	require.NoError(t, err)

	cmd, err := commands.NewRecomputeTotalCommand(caller(t, "mia", access.Manager), 1)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, order.ID(1)).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecomputeTotalCommandHandler(factory)
	total, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "5.75", total.String())
	assert.Equal(t, "5.75", o.Total().String())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecomputeTotalCommandHandler_Handle_OtherCustomerIsRefused(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, 1, "alice", map[string]string{"Latte": "3.50"})
	cmd, _ := commands.NewRecomputeTotalCommand(caller(t, "bob", access.Customer), 1)

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, order.ID(1)).Return(o, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecomputeTotalCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
