package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/guard"
)

var ErrSoftDeleteOrderCommandIsNotConstructed = errors.New(
	"SoftDeleteOrderCommand must be created via NewSoftDeleteOrderCommand constructor",
)

// SoftDeleteOrderCommand marks an order deleted without removing the row.
// Admin-only; reversible via RestoreOrderCommand.
type SoftDeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSoftDeleteOrderCommand creates a command to soft-delete an order.
func NewSoftDeleteOrderCommand(orderID, actorID kernel.UUID) (SoftDeleteOrderCommand, error) {
	cmd := SoftDeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return SoftDeleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SoftDeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the order being removed.
func (c SoftDeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the admin actor.
func (c SoftDeleteOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SoftDeleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SoftDeleteOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
