package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/guard"
)

var (
	ErrCalculateOrderPricingCommandIsNotConstructed = errors.New(
		"CalculateOrderPricingCommand must be created via NewCalculateOrderPricingCommand constructor",
	)
	ErrPricePerTonIsInvalid = errors.New("price per ton must not be negative")
	ErrCuttingFeesIsInvalid = errors.New("cutting fees must not be negative")
	ErrDiscountIsInvalid    = errors.New("discount must not be negative")
)

// CalculateOrderPricingCommand carries fresh pricing inputs for an order and
// asks for the total to be recomputed from them.
type CalculateOrderPricingCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	pricePerTon float64
	cuttingFees float64
	discount    float64
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCalculateOrderPricingCommand creates a command to recalculate an order's
// pricing from the given inputs.
func NewCalculateOrderPricingCommand(
	orderID kernel.UUID,
	pricePerTon, cuttingFees, discount float64,
	actorID kernel.UUID,
) (CalculateOrderPricingCommand, error) {
	cmd := CalculateOrderPricingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmounts(pricePerTon, cuttingFees, discount),
		cmd.setActorID(actorID),
	); err != nil {
		return CalculateOrderPricingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CalculateOrderPricingCommand) Validate() error {
	return c.guard.Validate(ErrCalculateOrderPricingCommandIsNotConstructed)
}

// OrderID returns the order being priced.
func (c CalculateOrderPricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PricePerTon returns the material price per ton.
func (c CalculateOrderPricingCommand) PricePerTon() float64 {
	return c.pricePerTon
}

// CuttingFees returns the cutting fee amount.
func (c CalculateOrderPricingCommand) CuttingFees() float64 {
	return c.cuttingFees
}

// Discount returns the discount amount.
func (c CalculateOrderPricingCommand) Discount() float64 {
	return c.discount
}

// ActorID returns the actor performing the calculation.
func (c CalculateOrderPricingCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CalculateOrderPricingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CalculateOrderPricingCommand) setAmounts(pricePerTon, cuttingFees, discount float64) error {
	var errsJoined []error
	if pricePerTon < 0 {
		errsJoined = append(errsJoined, ErrPricePerTonIsInvalid)
	}
	if cuttingFees < 0 {
		errsJoined = append(errsJoined, ErrCuttingFeesIsInvalid)
	}
	if discount < 0 {
		errsJoined = append(errsJoined, ErrDiscountIsInvalid)
	}
	if len(errsJoined) > 0 {
		return errors.Join(errsJoined...)
	}

	c.pricePerTon = pricePerTon
	c.cuttingFees = cuttingFees
	c.discount = discount
	return nil
}

func (c *CalculateOrderPricingCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
