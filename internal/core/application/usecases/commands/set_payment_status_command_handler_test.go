package commands_test

import (
	"testing"
	"time"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetPaymentStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, 1, "alice", map[string]string{"Latte": "3.50"})
	cmd, err := commands.NewSetPaymentStatusCommand(caller(t, "emma", access.Employee), 1, true)
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

	h := commands.NewSetPaymentStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, o.IsPaid())
	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, order.PaymentStatusChangedEventName, o.DomainEvents()[0].EventName())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetPaymentStatusCommandHandler_Handle_SameValueWritesNothing(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, 1, "alice", map[string]string{"Latte": "3.50"})
	o.SetPaymentStatus(true, time.Now().UTC())
	o.ClearDomainEvents()
	cmd, _ := commands.NewSetPaymentStatusCommand(caller(t, "mia", access.Manager), 1, true)

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, order.ID(1)).Return(o, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetPaymentStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Empty(t, o.DomainEvents())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSetPaymentStatusCommandHandler_Handle_CustomerIsRefusedBeforeLoad(t *testing.T) {
	cmd, _ := commands.NewSetPaymentStatusCommand(caller(t, "alice", access.Customer), 1, true)
	factory := new(MockOrderUoWFactory)

	h := commands.NewSetPaymentStatusCommandHandler(factory)
	err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestSetPaymentStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSetPaymentStatusCommand(caller(t, "emma", access.Employee), 42, true)

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, order.ID(42)).Return(nil, errs.NewObjectNotFoundError("order", "42")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetPaymentStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
