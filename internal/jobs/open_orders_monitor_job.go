package jobs

import (
	"context"
	"log/slog"

	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/access"

	"github.com/robfig/cron/v3"
)

// MonitorLogin is the staff identity the monitor reads the open-orders board with.
const MonitorLogin = "system.monitor"

type openOrdersReader interface {
	Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.OrderView, error)
}

// OpenOrdersMonitorJob logs how many orders are waiting for payment, once a minute.
type OpenOrdersMonitorJob struct {
	handler     openOrdersReader
	maxAgeHours int
	cron        *cron.Cron
	logger      *slog.Logger
}

func NewOpenOrdersMonitorJob(handler openOrdersReader, maxAgeHours int, logger *slog.Logger) *OpenOrdersMonitorJob {
	logger = logger.With("component", "open_orders_monitor_job")
	return &OpenOrdersMonitorJob{
		handler:     handler,
		maxAgeHours: maxAgeHours,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger}))),
		logger:      logger,
	}
}

// Start begins the monitor job at second 0 of every minute.
func (j *OpenOrdersMonitorJob) Start() error {
	caller, err := access.NewCaller(MonitorLogin, access.Manager)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOpenOrdersQuery(caller, j.maxAgeHours)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background(), query)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Open orders monitor job started (running every minute)",
		"max_age_hours", j.maxAgeHours)
	return nil
}

func (j *OpenOrdersMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Open orders monitor job stopped")
}

func (j *OpenOrdersMonitorJob) run(ctx context.Context, query queries.GetOpenOrdersQuery) {
	open, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Open orders monitor job failed", "error", err)
		return
	}

	if len(open) == 0 {
		j.logger.InfoContext(ctx, "No open orders", "max_age_hours", j.maxAgeHours)
		return
	}
	j.logger.InfoContext(ctx, "Open orders waiting for payment",
		"count", len(open),
		"oldest_order_id", open[0].ID.Int64(),
		"max_age_hours", j.maxAgeHours,
	)
}
