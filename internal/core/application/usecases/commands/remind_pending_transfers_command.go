package commands

import (
	"errors"

	"millflow/internal/pkg/guard"
)

var ErrRemindPendingTransfersCommandIsNotConstructed = errors.New(
	"RemindPendingTransfersCommand must be created via NewRemindPendingTransfersCommand constructor",
)

// RemindPendingTransfersCommand triggers a reminder sweep over every pending
// weight transfer: approvers of the receiving stage are re-notified so a
// requested transfer does not sit unnoticed. Parameterless; issued by the
// reminder job on a schedule.
type RemindPendingTransfersCommand struct {
	guard guard.ConstructorGuard
}

// NewRemindPendingTransfersCommand creates a command to trigger the sweep.
func NewRemindPendingTransfersCommand() RemindPendingTransfersCommand {
	return RemindPendingTransfersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RemindPendingTransfersCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingTransfersCommandIsNotConstructed)
}
