package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/pkg/guard"
)

var (
	ErrRejectTransferCommandIsNotConstructed = errors.New(
		"RejectTransferCommand must be created via NewRejectTransferCommand constructor",
	)
	ErrRejectionReasonIsTooShort = errors.New("rejection reason is too short")
)

// RejectTransferCommand represents an actor's decision to reject a pending
// weight transfer with an explanatory reason.
type RejectTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	actorID    kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewRejectTransferCommand creates a command to reject a weight transfer.
// The reason is mandatory and must carry real content.
func NewRejectTransferCommand(transferID, actorID kernel.UUID, reason string) (RejectTransferCommand, error) {
	cmd := RejectTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransferID(transferID),
		cmd.setActorID(actorID),
		cmd.setReason(reason),
	); err != nil {
		return RejectTransferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectTransferCommand) Validate() error {
	return c.guard.Validate(ErrRejectTransferCommandIsNotConstructed)
}

// TransferID returns the transfer being rejected.
func (c RejectTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// ActorID returns the rejecting actor.
func (c RejectTransferCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the rejection reason.
func (c RejectTransferCommand) Reason() string {
	return c.reason
}

func (c *RejectTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}

	c.transferID = transferID
	return nil
}

func (c *RejectTransferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RejectTransferCommand) setReason(reason string) error {
	if len(reason) < transfer.MinRejectionReasonLength {
		return ErrRejectionReasonIsTooShort
	}

	c.reason = reason
	return nil
}
