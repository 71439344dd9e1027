package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/guard"
)

var ErrApproveSortingCommandIsNotConstructed = errors.New(
	"ApproveSortingCommand must be created via NewApproveSortingCommand constructor",
)

// ApproveSortingCommand approves a recorded sorting result, freezing the
// two-roll split.
type ApproveSortingCommand struct { //nolint:recvcheck //using for validation
	recordID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveSortingCommand creates a command to approve a sorting result.
func NewApproveSortingCommand(recordID, actorID kernel.UUID) (ApproveSortingCommand, error) {
	cmd := ApproveSortingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecordID(recordID),
		cmd.setActorID(actorID),
	); err != nil {
		return ApproveSortingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveSortingCommand) Validate() error {
	return c.guard.Validate(ErrApproveSortingCommandIsNotConstructed)
}

// RecordID returns the sorting-stage processing record.
func (c ApproveSortingCommand) RecordID() kernel.UUID {
	return c.recordID
}

// ActorID returns the approving actor.
func (c ApproveSortingCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ApproveSortingCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}

	c.recordID = recordID
	return nil
}

func (c *ApproveSortingCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
