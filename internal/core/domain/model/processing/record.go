package processing

import (
	"errors"
	"fmt"
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through the NewRecord or RestoreRecord factory functions.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

	// ErrRecordIsTerminal is returned when a completed or cancelled record
	// receives further stage work.
	ErrRecordIsTerminal = errors.New("processing record is in a terminal status")
)

// Record is the per-(order, stage) state holder: it accounts for every
// kilogram entering and leaving its stage, carries the mandatory handover
// sub-state gating stage advance, and, for the sorting stage, the two-roll
// split and its release to a destination.
//
// Invariants:
//   - weightToTransfer never exceeds weightReceived, so the balance
//     (received - transferred) is never negative
//   - handover confirmation requires an actor distinct from the requester
//   - sorting release happens at most once; repeated release attempts fail
//     with errs.ErrAlreadyTransferred
type Record struct {
	id      kernel.UUID
	orderID kernel.UUID
	stage   order.Stage
	status  Status

	assignedTo *kernel.UUID

	weightReceived   kernel.Weight
	weightToTransfer kernel.Weight

	transferDestination *order.Stage
	transferApproved    bool
	transferApprovedBy  *kernel.UUID
	transferApprovedAt  *time.Time

	mandatoryHandover   bool
	handoverStatus      HandoverStatus
	handoverFrom        *kernel.UUID
	handoverTo          *kernel.UUID
	handoverRequestedAt *time.Time
	handoverCompletedAt *time.Time

	sorting sortingState

	// version is the optimistic concurrency token carried between the
	// repository and the aggregate. Zero for new records.
	version int

	isConstructed bool
}

// NewRecord creates a pending processing record for one order at one stage.
// mandatoryHandover marks stages whose advance is gated on an explicit
// ownership hand-off.
func NewRecord(id, orderID kernel.UUID, stage order.Stage, mandatoryHandover bool) (*Record, error) {
	r := &Record{
		status:            Pending,
		mandatoryHandover: mandatoryHandover,
		handoverStatus:    HandoverNotRequired,
		isConstructed:     true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setStage(stage),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreValues carries every persisted field of a Record. Used by the
// repository layer when rehydrating aggregates; a flat restore parameter list
// became unwieldy at this field count.
type RestoreValues struct {
	ID      kernel.UUID
	OrderID kernel.UUID
	Stage   order.Stage
	Status  Status

	AssignedTo *kernel.UUID

	WeightReceived   kernel.Weight
	WeightToTransfer kernel.Weight

	TransferDestination *order.Stage
	TransferApproved    bool
	TransferApprovedBy  *kernel.UUID
	TransferApprovedAt  *time.Time

	MandatoryHandover   bool
	HandoverStatus      HandoverStatus
	HandoverFrom        *kernel.UUID
	HandoverTo          *kernel.UUID
	HandoverRequestedAt *time.Time
	HandoverCompletedAt *time.Time

	SortingApproved        bool
	SortingApprovedBy      *kernel.UUID
	SortingApprovedAt      *time.Time
	Roll1                  *Roll
	Roll2                  *Roll
	WasteWeight            kernel.Weight
	PostSortingDestination Destination
	DestinationWarehouseID *kernel.UUID
	TransferCompleted      bool
	TransferCompletedAt    *time.Time

	Version int
}

// RestoreRecord reconstructs a Record from persistence.
func RestoreRecord(v RestoreValues) (*Record, error) {
	r := &Record{
		status:              v.Status,
		assignedTo:          v.AssignedTo,
		weightReceived:      v.WeightReceived,
		weightToTransfer:    v.WeightToTransfer,
		transferDestination: v.TransferDestination,
		transferApproved:    v.TransferApproved,
		transferApprovedBy:  v.TransferApprovedBy,
		transferApprovedAt:  v.TransferApprovedAt,
		mandatoryHandover:   v.MandatoryHandover,
		handoverStatus:      v.HandoverStatus,
		handoverFrom:        v.HandoverFrom,
		handoverTo:          v.HandoverTo,
		handoverRequestedAt: v.HandoverRequestedAt,
		handoverCompletedAt: v.HandoverCompletedAt,
		sorting: sortingState{
			approved:               v.SortingApproved,
			approvedBy:             v.SortingApprovedBy,
			approvedAt:             v.SortingApprovedAt,
			roll1:                  v.Roll1,
			roll2:                  v.Roll2,
			wasteWeight:            v.WasteWeight,
			postSortingDestination: v.PostSortingDestination,
			destinationWarehouseID: v.DestinationWarehouseID,
			transferCompleted:      v.TransferCompleted,
			transferCompletedAt:    v.TransferCompletedAt,
		},
		version:       v.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(v.ID),
		r.setOrderID(v.OrderID),
		r.setStage(v.Stage),
		v.Status.Validate(),
		v.HandoverStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if v.WeightReceived.LessThan(v.WeightToTransfer) {
		return nil, fmt.Errorf("%w: restored record %s", errs.ErrNegativeBalance, v.ID.String())
	}

	return r, nil
}

// Validate ensures the Record was constructed through a factory function.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order this record belongs to.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// Stage returns the work stage this record accounts for.
func (r *Record) Stage() order.Stage {
	return r.stage
}

// Status returns the record's stage-local status.
func (r *Record) Status() Status {
	return r.status
}

// AssignedTo returns the actor responsible for the stage, nil if unassigned.
func (r *Record) AssignedTo() *kernel.UUID {
	return r.assignedTo
}

// WeightReceived returns the total weight that entered this stage.
func (r *Record) WeightReceived() kernel.Weight {
	return r.weightReceived
}

// WeightToTransfer returns the total weight already committed to onward
// transfers.
func (r *Record) WeightToTransfer() kernel.Weight {
	return r.weightToTransfer
}

// WeightBalance returns received minus transferred. By construction this is
// never negative.
func (r *Record) WeightBalance() kernel.Weight {
	balance, err := r.weightReceived.Sub(r.weightToTransfer)
	if err != nil {
		// Unreachable while the aggregate invariant holds.
		return kernel.ZeroWeight()
	}
	return balance
}

// TransferDestination returns the stage the last approved transfer targeted.
func (r *Record) TransferDestination() *order.Stage {
	return r.transferDestination
}

// TransferApproved reports whether an outgoing transfer has been approved.
func (r *Record) TransferApproved() bool {
	return r.transferApproved
}

// TransferApprovedBy returns the approver of the last outgoing transfer.
func (r *Record) TransferApprovedBy() *kernel.UUID {
	return r.transferApprovedBy
}

// TransferApprovedAt returns when the last outgoing transfer was approved.
func (r *Record) TransferApprovedAt() *time.Time {
	return r.transferApprovedAt
}

// Version returns the optimistic concurrency token loaded with the aggregate.
func (r *Record) Version() int {
	return r.version
}

// Assign sets the actor responsible for the stage.
func (r *Record) Assign(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	r.assignedTo = &actorID
	return nil
}

// IsAssignedTo reports whether actorID is the actor responsible for this stage.
func (r *Record) IsAssignedTo(actorID kernel.UUID) bool {
	return r.assignedTo != nil && r.assignedTo.IsEqual(actorID)
}

// Start moves the record from Pending to InProgress.
func (r *Record) Start() error {
	if r.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s cannot start stage work", r.status.String()),
		)
	}
	r.status = InProgress
	return nil
}

// Complete marks the stage's work on the order as finished.
func (r *Record) Complete() error {
	if r.status.IsTerminal() {
		return ErrRecordIsTerminal
	}
	r.status = Completed
	return nil
}

// Cancel aborts the record together with its order.
func (r *Record) Cancel() error {
	if r.status.IsTerminal() {
		return ErrRecordIsTerminal
	}
	r.status = Cancelled
	return nil
}

// ReceiveWeight accounts for material entering the stage. The first receipt
// moves a pending record to InProgress.
func (r *Record) ReceiveWeight(w kernel.Weight) error {
	if r.status.IsTerminal() {
		return ErrRecordIsTerminal
	}
	if !w.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not positive", w.String()))
	}

	r.weightReceived = r.weightReceived.Add(w)
	if r.status == Pending {
		r.status = InProgress
	}
	return nil
}

// ApplyOutgoingTransfer accounts for material leaving the stage through an
// approved transfer. Fails with errs.ErrInsufficientWeight when the requested
// amount exceeds the remaining balance.
func (r *Record) ApplyOutgoingTransfer(w kernel.Weight, destination order.Stage, approvedBy kernel.UUID) error {
	if r.status.IsTerminal() {
		return ErrRecordIsTerminal
	}
	if !w.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not positive", w.String()))
	}
	if r.WeightBalance().LessThan(w) {
		return fmt.Errorf("%w: requested %s, balance %s",
			errs.ErrInsufficientWeight, w.String(), r.WeightBalance().String())
	}

	now := time.Now().UTC()
	r.weightToTransfer = r.weightToTransfer.Add(w)
	r.transferDestination = &destination
	r.transferApproved = true
	r.transferApprovedBy = &approvedBy
	r.transferApprovedAt = &now
	return nil
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	if !stage.IsWorkflowStage() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s is not a workflow stage", stage.String()),
		)
	}
	r.stage = stage
	return nil
}
