package jobs

import (
	"context"
	"log/slog"
	"time"

	"cafe/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// DefaultRelayRunTimeout bounds one relay run, transaction included.
const DefaultRelayRunTimeout = time.Minute

// OutboxRelayJob publishes pending order events every second. A tick that finds the
// previous run still busy is skipped.
type OutboxRelayJob struct {
	handler    outboxRelayer
	batchSize  int
	runTimeout time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxRelayJob creates the relay job. batchSize bounds the messages locked per run;
// a runTimeout of zero or less means DefaultRelayRunTimeout.
func NewOutboxRelayJob(handler outboxRelayer, batchSize int, runTimeout time.Duration, logger *slog.Logger) *OutboxRelayJob {
	if runTimeout <= 0 {
		runTimeout = DefaultRelayRunTimeout
	}
	logger = logger.With("component", "outbox_relay_job")
	return &OutboxRelayJob{
		handler:    handler,
		batchSize:  batchSize,
		runTimeout: runTimeout,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger}))),
		logger:     logger,
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc("* * * * * *", func() {
		j.run(context.Background(), cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)", "batch_size", j.batchSize)
	return nil
}

// Stop stops the relay job and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(ctx context.Context, cmd commands.RelayOutboxCommand) int {
	ctx, cancel := context.WithTimeout(ctx, j.runTimeout)
	defer cancel()

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "published", sent)
		return sent
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "published", sent)
	}
	return sent
}
