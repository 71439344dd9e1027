package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/guard"
)

var ErrRequestHandoverCommandIsNotConstructed = errors.New(
	"RequestHandoverCommand must be created via NewRequestHandoverCommand constructor",
)

// RequestHandoverCommand opens the handover of a processing record's stage
// ownership. A different actor confirms it.
type RequestHandoverCommand struct { //nolint:recvcheck //using for validation
	recordID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestHandoverCommand creates a command to request a stage handover.
func NewRequestHandoverCommand(recordID, actorID kernel.UUID) (RequestHandoverCommand, error) {
	cmd := RequestHandoverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecordID(recordID),
		cmd.setActorID(actorID),
	); err != nil {
		return RequestHandoverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestHandoverCommand) Validate() error {
	return c.guard.Validate(ErrRequestHandoverCommandIsNotConstructed)
}

// RecordID returns the processing record handing over.
func (c RequestHandoverCommand) RecordID() kernel.UUID {
	return c.recordID
}

// ActorID returns the actor requesting the handover.
func (c RequestHandoverCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RequestHandoverCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}

	c.recordID = recordID
	return nil
}

func (c *RequestHandoverCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
