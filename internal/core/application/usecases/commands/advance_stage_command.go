package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand represents a request to move an order to the named next
// stage. Only the immediate successor is a legal target; anything else fails
// downstream with errs.ErrOutOfOrder.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	targetStage order.Stage
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command to advance an order one stage.
func NewAdvanceStageCommand(orderID kernel.UUID, targetStage order.Stage, actorID kernel.UUID) (AdvanceStageCommand, error) {
	cmd := AdvanceStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStage(targetStage),
		cmd.setActorID(actorID),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// OrderID returns the order being advanced.
func (c AdvanceStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStage returns the stage the order should move to.
func (c AdvanceStageCommand) TargetStage() order.Stage {
	return c.targetStage
}

// ActorID returns the actor performing the advance.
func (c AdvanceStageCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AdvanceStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceStageCommand) setTargetStage(targetStage order.Stage) error {
	if err := targetStage.Validate(); err != nil {
		return err
	}

	c.targetStage = targetStage
	return nil
}

func (c *AdvanceStageCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
