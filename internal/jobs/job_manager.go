package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob       *OutboxRelayJob
	openOrdersMonitorJob *OpenOrdersMonitorJob
}

// NewJobManager creates a new job manager. A nil relayHandler leaves the relay job out,
// which is how the service runs without a message broker.
func NewJobManager(
	relayHandler outboxRelayer,
	relayBatchSize int,
	relayRunTimeout time.Duration,
	openOrdersHandler openOrdersReader,
	openOrdersMaxAgeHours int,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		openOrdersMonitorJob: NewOpenOrdersMonitorJob(openOrdersHandler, openOrdersMaxAgeHours, logger),
	}
	if relayHandler != nil {
		jm.outboxRelayJob = NewOutboxRelayJob(relayHandler, relayBatchSize, relayRunTimeout, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.openOrdersMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start open orders monitor job: %w", err)
	}

	if jm.outboxRelayJob == nil {
		return nil
	}

	if err := jm.outboxRelayJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.openOrdersMonitorJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.outboxRelayJob != nil {
		jm.outboxRelayJob.Stop()
	}
	jm.openOrdersMonitorJob.Stop()
}
