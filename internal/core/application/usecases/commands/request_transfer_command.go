package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/guard"
)

var (
	ErrRequestTransferCommandIsNotConstructed = errors.New(
		"RequestTransferCommand must be created via NewRequestTransferCommand constructor",
	)
	ErrTransferWeightIsInvalid = errors.New("transfer weight must be greater than 0")
)

// RequestTransferCommand represents a request to move material weight from the
// order's current stage to a later one. The source stage is the order's
// current stage; only the destination is named explicitly.
type RequestTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	orderID    kernel.UUID
	toStage    order.Stage
	weight     kernel.Weight
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestTransferCommand creates a command to request a weight transfer.
func NewRequestTransferCommand(
	transferID, orderID kernel.UUID,
	toStage order.Stage,
	weight kernel.Weight,
	actorID kernel.UUID,
) (RequestTransferCommand, error) {
	cmd := RequestTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransferID(transferID),
		cmd.setOrderID(orderID),
		cmd.setToStage(toStage),
		cmd.setWeight(weight),
		cmd.setActorID(actorID),
	); err != nil {
		return RequestTransferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransferCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransferCommandIsNotConstructed)
}

// TransferID returns the identifier for the new transfer.
func (c RequestTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// OrderID returns the order whose material is being moved.
func (c RequestTransferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ToStage returns the receiving stage.
func (c RequestTransferCommand) ToStage() order.Stage {
	return c.toStage
}

// Weight returns the amount of material to move.
func (c RequestTransferCommand) Weight() kernel.Weight {
	return c.weight
}

// ActorID returns the requesting actor.
func (c RequestTransferCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RequestTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}

	c.transferID = transferID
	return nil
}

func (c *RequestTransferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransferCommand) setToStage(toStage order.Stage) error {
	if err := toStage.Validate(); err != nil {
		return err
	}

	c.toStage = toStage
	return nil
}

func (c *RequestTransferCommand) setWeight(weight kernel.Weight) error {
	if !weight.IsPositive() {
		return ErrTransferWeightIsInvalid
	}

	c.weight = weight
	return nil
}

func (c *RequestTransferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
