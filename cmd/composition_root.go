package cmd

import (
	"log/slog"

	httpin "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/out/postgres"
	"cafe/internal/adapters/out/postgres/menurepo"
	"cafe/internal/adapters/out/postgres/userrepo"
	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/ports"
	"cafe/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	menu       ports.MenuCatalog
	users      ports.UserDirectory
	publisher  ports.EventPublisher
}

// NewCompositionRoot wires the adapters. publisher may be nil, in which case events
// stay in the outbox until a broker is configured.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		menu:       menurepo.NewGormMenuCatalog(gormDB),
		users:      userrepo.NewGormUserDirectory(gormDB),
		publisher:  publisher,
	}
}

func (c *CompositionRoot) Users() ports.UserDirectory {
	return c.users
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceFirstItemCommandHandler() commands.PlaceFirstItemCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceFirstItemCommandHandler(f, c.menu, c.users)
}

func (c *CompositionRoot) CreateAddItemToOpenOrderCommandHandler() commands.AddItemToOpenOrderCommandHandler {
	return commands.NewAddItemToOpenOrderCommandHandler(c.orderUoWFactory(), c.menu)
}

func (c *CompositionRoot) CreateRecomputeTotalCommandHandler() commands.RecomputeTotalCommandHandler {
	return commands.NewRecomputeTotalCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetPaymentStatusCommandHandler() commands.SetPaymentStatusCommandHandler {
	return commands.NewSetPaymentStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetItemStatusCommandHandler() commands.SetItemStatusCommandHandler {
	return commands.NewSetItemStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetItemCommentCommandHandler() commands.SetItemCommentCommandHandler {
	return commands.NewSetItemCommentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, publisher, c.cfg.PublishTimeout)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.users)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects every use case the REST front end dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	placeFirstItem := c.CreatePlaceFirstItemCommandHandler()
	addItem := c.CreateAddItemToOpenOrderCommandHandler()
	recomputeTotal := c.CreateRecomputeTotalCommandHandler()
	setPaymentStatus := c.CreateSetPaymentStatusCommandHandler()
	setItemStatus := c.CreateSetItemStatusCommandHandler()
	setItemComment := c.CreateSetItemCommentCommandHandler()

	return httpin.Handlers{
		PlaceFirstItem:   &placeFirstItem,
		AddItem:          &addItem,
		RecomputeTotal:   &recomputeTotal,
		SetPaymentStatus: &setPaymentStatus,
		SetItemStatus:    &setItemStatus,
		SetItemComment:   &setItemComment,
		OrderHistory:     c.CreateGetOrderHistoryQueryHandler(),
		OrderStatus:      c.CreateGetOrderStatusQueryHandler(),
		OpenOrders:       c.CreateGetOpenOrdersQueryHandler(),
	}
}

// CreateJobManager schedules the open-orders monitor and, when a publisher is
// configured, the outbox relay.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	openOrders := c.CreateGetOpenOrdersQueryHandler()

	if c.publisher == nil {
		return jobs.NewJobManager(nil, c.cfg.OutboxBatchSize, c.cfg.RelayRunTimeout, openOrders, c.cfg.OpenOrdersMaxAgeHours, logger)
	}

	relay := c.CreateRelayOutboxCommandHandler(c.publisher)
	return jobs.NewJobManager(&relay, c.cfg.OutboxBatchSize, c.cfg.RelayRunTimeout, openOrders, c.cfg.OpenOrdersMaxAgeHours, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
