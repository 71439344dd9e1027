package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/guard"
)

var ErrApproveTransferCommandIsNotConstructed = errors.New(
	"ApproveTransferCommand must be created via NewApproveTransferCommand constructor",
)

// ApproveTransferCommand represents an actor's decision to approve a pending
// weight transfer.
type ApproveTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveTransferCommand creates a command to approve a weight transfer.
func NewApproveTransferCommand(transferID, actorID kernel.UUID) (ApproveTransferCommand, error) {
	cmd := ApproveTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransferID(transferID),
		cmd.setActorID(actorID),
	); err != nil {
		return ApproveTransferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveTransferCommand) Validate() error {
	return c.guard.Validate(ErrApproveTransferCommandIsNotConstructed)
}

// TransferID returns the transfer being approved.
func (c ApproveTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// ActorID returns the approving actor.
func (c ApproveTransferCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ApproveTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}

	c.transferID = transferID
	return nil
}

func (c *ApproveTransferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
