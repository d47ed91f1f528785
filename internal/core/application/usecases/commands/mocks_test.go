package commands_test

import (
	"context"
	"testing"
	"time"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAllocator struct{ mock.Mock }

func (m *MockAllocator) Allocate(ctx context.Context) (order.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(order.ID), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderIDAllocator() ports.OrderIDAllocator {
	args := m.Called()
	return args.Get(0).(ports.OrderIDAllocator)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPlaceOrderUoWFactory struct{ mock.Mock }

func (m *MockPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.PlaceOrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) Lookup(ctx context.Context, itemName string) (kernel.Money, bool, error) {
	args := m.Called(ctx, itemName)
	return args.Get(0).(kernel.Money), args.Bool(1), args.Error(2)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) RoleOf(ctx context.Context, login string) (access.Role, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(access.Role), args.Error(1)
}

func (m *MockUserDirectory) Exists(ctx context.Context, login string) (bool, error) {
	args := m.Called(ctx, login)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func caller(t *testing.T, login string, role access.Role) access.Caller {
	t.Helper()
	c, err := access.NewCaller(login, role)
	require.NoError(t, err)
	return c
}

func price(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

// existingOrder builds an order of owner with one line item per name, as if loaded from storage.
func existingOrder(t *testing.T, id order.ID, owner string, items map[string]string) *order.Order {
	t.Helper()
	created := time.Now().UTC().Add(-time.Hour)
	o, err := order.NewOrder(id, owner, created)
	require.NoError(t, err)
	for name, p := range items {
		_, err = o.AttachItem(kernel.NewUUID(), name, price(t, p), created)
		require.NoError(t, err)
	}
	o.ClearDomainEvents()
	return o
}
