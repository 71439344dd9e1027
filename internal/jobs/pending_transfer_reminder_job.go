package jobs

import (
	"context"
	"log/slog"

	"millflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reminderSchedule runs the sweep every 15 minutes. Pending transfers block
// the source stage's weight, so unanswered requests are worth nagging about.
const reminderSchedule = "*/15 * * * *"

// PendingTransferReminderJob periodically re-notifies approvers of weight
// transfers still awaiting a decision.
type PendingTransferReminderJob struct {
	handler commands.RemindPendingTransfersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPendingTransferReminderJob creates the reminder job.
func NewPendingTransferReminderJob(
	handler commands.RemindPendingTransfersCommandHandler,
	logger *slog.Logger,
) *PendingTransferReminderJob {
	return &PendingTransferReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "pending_transfer_reminder_job"),
	}
}

// Start schedules the reminder sweep.
func (j *PendingTransferReminderJob) Start() error {
	_, err := j.cron.AddFunc(reminderSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRemindPendingTransfersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "pending transfer reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "pending transfer reminder job started",
		"schedule", reminderSchedule)
	return nil
}

// Stop stops the reminder job.
func (j *PendingTransferReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "pending transfer reminder job stopped")
}
