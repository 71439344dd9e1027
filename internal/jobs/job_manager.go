// Package jobs provides the scheduled background tasks of the workflow
// service, built on github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"millflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pendingTransferReminderJob *PendingTransferReminderJob
}

// NewJobManager creates a job manager wired to the given command handlers.
func NewJobManager(
	remindHandler commands.RemindPendingTransfersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingTransferReminderJob: NewPendingTransferReminderJob(remindHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingTransferReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending transfer reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingTransferReminderJob.Stop()
}
