package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/guard"
)

// MinSkipReasonLength is the minimum length of the mandatory skip reason.
const MinSkipReasonLength = 5

var (
	ErrSkipStageCommandIsNotConstructed = errors.New(
		"SkipStageCommand must be created via NewSkipStageCommand constructor",
	)
	ErrSkipReasonIsTooShort = errors.New("skip reason is too short")
)

// SkipStageCommand represents an elevated request to move an order forward
// past one or more stages. Requires a reason; audited separately from normal
// advances.
type SkipStageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	targetStage order.Stage
	reason      string
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewSkipStageCommand creates a command to skip an order ahead.
func NewSkipStageCommand(
	orderID kernel.UUID,
	targetStage order.Stage,
	reason string,
	actorID kernel.UUID,
) (SkipStageCommand, error) {
	cmd := SkipStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStage(targetStage),
		cmd.setReason(reason),
		cmd.setActorID(actorID),
	); err != nil {
		return SkipStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SkipStageCommand) Validate() error {
	return c.guard.Validate(ErrSkipStageCommandIsNotConstructed)
}

// OrderID returns the order being moved.
func (c SkipStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStage returns the stage the order should land on.
func (c SkipStageCommand) TargetStage() order.Stage {
	return c.targetStage
}

// Reason returns the mandatory justification for the skip.
func (c SkipStageCommand) Reason() string {
	return c.reason
}

// ActorID returns the actor performing the skip.
func (c SkipStageCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SkipStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SkipStageCommand) setTargetStage(targetStage order.Stage) error {
	if err := targetStage.Validate(); err != nil {
		return err
	}

	c.targetStage = targetStage
	return nil
}

func (c *SkipStageCommand) setReason(reason string) error {
	if len(reason) < MinSkipReasonLength {
		return ErrSkipReasonIsTooShort
	}

	c.reason = reason
	return nil
}

func (c *SkipStageCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
