package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/guard"
)

var ErrConfirmHandoverCommandIsNotConstructed = errors.New(
	"ConfirmHandoverCommand must be created via NewConfirmHandoverCommand constructor",
)

// ConfirmHandoverCommand completes a pending handover. The confirming actor
// must differ from the requester.
type ConfirmHandoverCommand struct { //nolint:recvcheck //using for validation
	recordID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmHandoverCommand creates a command to confirm a stage handover.
func NewConfirmHandoverCommand(recordID, actorID kernel.UUID) (ConfirmHandoverCommand, error) {
	cmd := ConfirmHandoverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecordID(recordID),
		cmd.setActorID(actorID),
	); err != nil {
		return ConfirmHandoverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmHandoverCommand) Validate() error {
	return c.guard.Validate(ErrConfirmHandoverCommandIsNotConstructed)
}

// RecordID returns the processing record handing over.
func (c ConfirmHandoverCommand) RecordID() kernel.UUID {
	return c.recordID
}

// ActorID returns the actor confirming the handover.
func (c ConfirmHandoverCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ConfirmHandoverCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}

	c.recordID = recordID
	return nil
}

func (c *ConfirmHandoverCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
