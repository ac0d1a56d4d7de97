package jobs

import (
	"fmt"
	"log/slog"
)

// Config selects the schedule and batch size of the outbox relay.
type Config struct {
	RelaySchedule  string
	RelayBatchSize int
}

// JobManager owns the background schedules of the service.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

func NewJobManager(relayer OutboxRelayer, cfg Config, logger *slog.Logger) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayer, cfg.RelaySchedule, cfg.RelayBatchSize, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("outbox relay: %w", err)
	}
	return nil
}

// StopAll waits for running jobs to return.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
