package order

import (
	"errors"
	"fmt"
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrPricingNotCalculated is returned when a final price is applied to an
	// order whose pricing inputs changed since the last calculation.
	ErrPricingNotCalculated = errors.New("pricing must be recalculated before committing a price")
)

// Order is the aggregate root tracking a physical material order across the
// production sequence. It owns the stage state machine and the pricing inputs;
// per-stage weight accounting lives on processing records keyed by
// (order, stage).
//
// Invariants:
//   - stage is always a defined Stage value; transitions go through
//     AdvanceTo, SkipTo, or Cancel
//   - pricing fields are only trusted while pricingCalculated is true; any
//     change to an input resets the flag
//   - orders are only created through NewOrder / RestoreOrder
type Order struct {
	id          kernel.UUID
	orderNumber string
	orderType   Type
	stage       Stage

	requiredWeight kernel.Weight
	pricePerTon    float64
	cuttingFees    float64
	discount       float64

	estimatedPrice    *float64
	finalPrice        *float64
	pricingCalculated bool

	createdAt   time.Time
	submittedAt *time.Time
	approvedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time

	// version is the optimistic concurrency token carried between the
	// repository and the aggregate. Zero for new orders.
	version int

	isConstructed bool
}

// NewOrder creates an order at the Creation stage with pricing not yet
// calculated. The order number is system-generated by the caller (an external
// collaborator concern) and must be non-empty.
func NewOrder(id kernel.UUID, orderNumber string, orderType Type, requiredWeight kernel.Weight) (*Order, error) {
	o := &Order{
		stage:         Creation,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setOrderType(orderType),
		o.setRequiredWeight(requiredWeight),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its stage,
// pricing state, lifecycle timestamps and concurrency version. Unlike NewOrder
// it accepts any valid stage.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	orderType Type,
	stage Stage,
	requiredWeight kernel.Weight,
	pricePerTon, cuttingFees, discount float64,
	estimatedPrice, finalPrice *float64,
	pricingCalculated bool,
	createdAt time.Time,
	submittedAt, approvedAt, startedAt, completedAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		estimatedPrice:    estimatedPrice,
		finalPrice:        finalPrice,
		pricingCalculated: pricingCalculated,
		createdAt:         createdAt,
		submittedAt:       submittedAt,
		approvedAt:        approvedAt,
		startedAt:         startedAt,
		completedAt:       completedAt,
		version:           version,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setOrderType(orderType),
		o.setStage(stage),
		o.setRequiredWeight(requiredWeight),
	); err != nil {
		return nil, err
	}

	o.pricePerTon = pricePerTon
	o.cuttingFees = cuttingFees
	o.discount = discount
	return o, nil
}

// Validate ensures the Order was constructed through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the system-generated unique order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// OrderType returns the direction of material flow.
func (o *Order) OrderType() Type {
	return o.orderType
}

// Stage returns the order's current stage.
func (o *Order) Stage() Stage {
	return o.stage
}

// RequiredWeight returns the weight the order was placed for.
func (o *Order) RequiredWeight() kernel.Weight {
	return o.requiredWeight
}

// PricePerTon returns the agreed material price per metric ton.
func (o *Order) PricePerTon() float64 {
	return o.pricePerTon
}

// CuttingFees returns the flat cutting fee for the order.
func (o *Order) CuttingFees() float64 {
	return o.cuttingFees
}

// Discount returns the flat discount applied to the order total.
func (o *Order) Discount() float64 {
	return o.discount
}

// EstimatedPrice returns the last calculated total, nil if never calculated.
// Only trusted while PricingCalculated is true.
func (o *Order) EstimatedPrice() *float64 {
	return o.estimatedPrice
}

// FinalPrice returns the committed final price, nil until invoicing.
func (o *Order) FinalPrice() *float64 {
	return o.finalPrice
}

// PricingCalculated reports whether the pricing fields reflect the current
// pricing inputs.
func (o *Order) PricingCalculated() bool {
	return o.pricingCalculated
}

// CreatedAt returns the intake timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SubmittedAt returns when the order left Creation, nil before that.
func (o *Order) SubmittedAt() *time.Time {
	return o.submittedAt
}

// ApprovedAt returns when the order passed Review, nil before that.
func (o *Order) ApprovedAt() *time.Time {
	return o.approvedAt
}

// StartedAt returns when material work began, nil before that.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// CompletedAt returns when the order reached a terminal state, nil before that.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Version returns the optimistic concurrency token loaded with the aggregate.
func (o *Order) Version() int {
	return o.version
}

// AdvanceTo moves the order to the immediate successor of its current stage.
// Fails with errs.ErrOutOfOrder for any other target. Lifecycle timestamps are
// stamped as the order crosses the corresponding boundaries.
func (o *Order) AdvanceTo(target Stage) error {
	if err := o.stage.ValidateAdvanceTo(target); err != nil {
		return err
	}

	o.stampTransition(o.stage, target)
	o.stage = target
	return nil
}

// SkipTo moves the order forward past one or more stages. Authority and the
// mandatory reason are enforced by the use case layer; the aggregate only
// guarantees the move is forward within the workflow.
func (o *Order) SkipTo(target Stage) error {
	if err := o.stage.ValidateSkipTo(target); err != nil {
		return err
	}

	o.stampTransition(o.stage, target)
	o.stage = target
	return nil
}

// Cancel moves the order to the terminal Cancelled state from any non-terminal
// stage and stamps the completion time.
func (o *Order) Cancel() error {
	newStage, err := o.stage.Cancel()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.completedAt = &now
	o.stage = newStage
	return nil
}

// SetPricingInputs updates the pricing inputs and invalidates any previously
// calculated price. pricePerTon, cuttingFees and discount must be
// non-negative; requiredWeight must be positive.
func (o *Order) SetPricingInputs(pricePerTon, cuttingFees, discount float64, requiredWeight kernel.Weight) error {
	if pricePerTon < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price per ton", fmt.Errorf("%v is negative", pricePerTon))
	}
	if cuttingFees < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cutting fees", fmt.Errorf("%v is negative", cuttingFees))
	}
	if discount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("discount", fmt.Errorf("%v is negative", discount))
	}
	if !requiredWeight.IsPositive() {
		return errs.NewValueIsRequiredError("required weight")
	}

	o.pricePerTon = pricePerTon
	o.cuttingFees = cuttingFees
	o.discount = discount
	o.requiredWeight = requiredWeight
	o.pricingCalculated = false
	return nil
}

// ApplyEstimatedPrice records a freshly calculated total and marks the pricing
// fields as trusted.
func (o *Order) ApplyEstimatedPrice(total float64) {
	o.estimatedPrice = &total
	o.pricingCalculated = true
}

// ApplyFinalPrice commits the invoiced total. Requires the estimate to be
// current; fails with ErrPricingNotCalculated otherwise.
func (o *Order) ApplyFinalPrice(total float64) error {
	if !o.pricingCalculated {
		return ErrPricingNotCalculated
	}
	o.finalPrice = &total
	return nil
}

// stampTransition records lifecycle timestamps as the order crosses stage
// boundaries: leaving Creation submits it, leaving Review approves it,
// entering material work starts it, reaching Delivered completes it.
func (o *Order) stampTransition(from, to Stage) {
	now := time.Now().UTC()
	if from == Creation && o.submittedAt == nil {
		o.submittedAt = &now
	}
	if from <= Review && to > Review && o.approvedAt == nil {
		o.approvedAt = &now
	}
	if to >= MaterialReservation && to <= Delivery && o.startedAt == nil {
		o.startedAt = &now
	}
	if to == Delivered {
		o.completedAt = &now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setOrderType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	o.stage = stage
	return nil
}

func (o *Order) setRequiredWeight(requiredWeight kernel.Weight) error {
	if !requiredWeight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"required weight",
			fmt.Errorf("%s is not greater than 0", requiredWeight.String()),
		)
	}
	o.requiredWeight = requiredWeight
	return nil
}
