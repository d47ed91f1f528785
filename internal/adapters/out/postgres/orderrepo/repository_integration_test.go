package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"cafe/internal/adapters/out/postgres/orderrepo"
	"cafe/internal/adapters/out/postgres/pgtest"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id order.ID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
	suite.Require().NoError(suite.database.SeedUser("alice", "Customer"))
	suite.Require().NoError(suite.database.SeedMenuItem("Latte", "3.50"))
	suite.Require().NoError(suite.database.SeedMenuItem("Muffin", "2.25"))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id order.ID, items ...string) *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	o, err := order.NewOrder(id, "alice", now)
	suite.Require().NoError(err)

	prices := map[string]string{"Latte": "3.50", "Muffin": "2.25"}
	for i, name := range items {
		price, err := kernel.MoneyFromString(prices[name])
		suite.Require().NoError(err)
		_, err = o.AttachItem(kernel.NewUUID(), name, price, now.Add(time.Duration(i)*time.Millisecond))
		suite.Require().NoError(err)
	}
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithItems() {
	ctx := suite.T().Context()
	o := suite.newOrder(1, "Latte", "Muffin")

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("alice", loaded.Owner())
	suite.False(loaded.IsPaid())
	suite.Equal("5.75", loaded.Total().String())
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("Latte", loaded.Items()[0].ItemName())
	suite.Equal(order.NotStarted, loaded.Items()[0].Status())
	suite.True(o.CreatedAt().Equal(loaded.CreatedAt()))
	suite.Empty(loaded.DomainEvents())

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", order.ID(1), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_InvalidOrder() {
	err := suite.repository.Add(suite.T().Context(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_IsStorageError() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "Latte")))

	err := suite.repository.Add(ctx, suite.newOrder(1, "Muffin"))

	suite.Require().ErrorIs(err, errs.ErrStorageUnavailable)
	suite.Contains(err.Error(), "23505")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UpsertsItemsAndHeader() {
	ctx := suite.T().Context()
	o := suite.newOrder(1, "Latte")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	muffin, _ := kernel.MoneyFromString("2.25")
	_, err = loaded.AttachItem(kernel.NewUUID(), "Muffin", muffin, time.Now().UTC())
	suite.Require().NoError(err)
	_, err = loaded.SetItemStatus("Latte", order.Started, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.CommentItem("Muffin", "warm please", time.Now().UTC()))
	loaded.SetPaymentStatus(true, time.Now().UTC())

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.True(reloaded.IsPaid())
	suite.Equal("5.75", reloaded.Total().String())
	suite.Require().Len(reloaded.Items(), 2)
	suite.Equal(order.Started, reloaded.ItemsNamed("Latte")[0].Status())
	suite.Equal("warm please", reloaded.ItemsNamed("Muffin")[0].Comment())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	err := suite.repository.Update(suite.T().Context(), suite.newOrder(99, "Latte"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder() {
	o, err := suite.repository.Get(suite.T().Context(), 42)

	suite.Nil(o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_LegacyStatusSpelling() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "Latte")))
	suite.Require().NoError(suite.database.DB.Exec("ALTER TABLE line_items DROP CONSTRAINT line_items_status_check").Error)
	suite.Require().NoError(suite.database.DB.Exec("UPDATE line_items SET status = 'Hasn''t started'").Error)

	loaded, err := suite.repository.Get(ctx, 1)

	suite.Require().NoError(err)
	suite.Equal(order.NotStarted, loaded.Items()[0].Status())

	suite.Require().NoError(suite.database.DB.Exec("UPDATE line_items SET status = 'NotStarted'").Error)
	suite.Require().NoError(suite.database.DB.Exec(
		"ALTER TABLE line_items ADD CONSTRAINT line_items_status_check CHECK (status IN ('NotStarted', 'Started', 'Finished'))").Error)
}

// TestGetForUpdate_SerializesWriters attaches items from concurrent transactions;
// the row lock must make every attach visible in the final total.
func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesWriters() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1)))

	const writers = 8
	muffin, _ := kernel.MoneyFromString("2.25")

	g, gctx := errgroup.WithContext(ctx)
	for range writers {
		g.Go(func() error {
			return suite.database.DB.WithContext(gctx).Transaction(func(tx *gorm.DB) error {
				repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
				o, err := repo.GetForUpdate(gctx, 1)
				if err != nil {
					return err
				}
				if _, err := o.AttachItem(kernel.NewUUID(), "Muffin", muffin, time.Now().UTC()); err != nil {
					return err
				}
				return repo.Update(gctx, o)
			})
		})
	}
	suite.Require().NoError(g.Wait())

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(loaded.Items(), writers)
	suite.Equal("18.00", loaded.Total().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
