package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRequiredWeightIsInvalid = errors.New("required weight must be greater than 0")
)

// CreateOrderCommand represents a request to register a new material order.
// The order number is assigned by the handler, not the caller.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	weight, _ := kernel.NewWeight(1000)
//	cmd, err := NewCreateOrderCommand(orderID, order.Inbound, weight, actorID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, numberGen, recorder)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	orderType      order.Type
	requiredWeight kernel.Weight
	actorID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new material order.
// Validates that the order ID, type, weight and actor are all well-formed.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderType order.Type,
	requiredWeight kernel.Weight,
	actorID kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderType(orderType),
		cmd.setRequiredWeight(requiredWeight),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderType returns whether the order is inbound or outbound.
func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// RequiredWeight returns the total material weight the order calls for.
func (c CreateOrderCommand) RequiredWeight() kernel.Weight {
	return c.requiredWeight
}

// ActorID returns the actor creating the order.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setRequiredWeight(requiredWeight kernel.Weight) error {
	if !requiredWeight.IsPositive() {
		return ErrRequiredWeightIsInvalid
	}

	c.requiredWeight = requiredWeight
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
