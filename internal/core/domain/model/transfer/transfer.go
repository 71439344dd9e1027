package transfer

import (
	"errors"
	"fmt"
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"
)

// MinRejectionReasonLength is the minimum length of a rejection reason.
// A bare "no" helps nobody reading the trail later.
const MinRejectionReasonLength = 10

var (
	// ErrTransferIsNotConstructed is returned when a Transfer instance was not
	// created through the NewTransfer or RestoreTransfer factory functions.
	ErrTransferIsNotConstructed = errors.New("Transfer must be created via NewTransfer or RestoreTransfer")

	// ErrSelfApproval is returned when the actor who requested the transfer
	// attempts to resolve it.
	ErrSelfApproval = errors.New("transfer cannot be resolved by its requester")
)

// Transfer is a request to move a quantity of material weight from one stage
// to the next, subject to human approval by the receiving side.
//
// Invariants:
//   - weight is strictly positive
//   - toStage follows fromStage in the workflow
//   - pending is the only mutable state; approved and rejected are terminal
//   - the requester can never be the resolver
type Transfer struct {
	id      kernel.UUID
	orderID kernel.UUID

	fromStage order.Stage
	toStage   order.Stage
	weight    kernel.Weight

	status      Status
	requestedBy kernel.UUID
	requestedAt time.Time

	approvedBy *kernel.UUID
	approvedAt *time.Time

	rejectedBy      *kernel.UUID
	rejectedAt      *time.Time
	rejectionReason string

	// version is the optimistic concurrency token carried between the
	// repository and the aggregate. Zero for new transfers.
	version int

	isConstructed bool
}

// NewTransfer creates a pending transfer request.
func NewTransfer(
	id, orderID kernel.UUID,
	fromStage, toStage order.Stage,
	weight kernel.Weight,
	requestedBy kernel.UUID,
) (*Transfer, error) {
	t := &Transfer{
		status:        Pending,
		requestedAt:   time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setStages(fromStage, toStage),
		t.setWeight(weight),
		t.setRequestedBy(requestedBy),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTransfer reconstructs a transfer from persistence.
func RestoreTransfer(
	id, orderID kernel.UUID,
	fromStage, toStage order.Stage,
	weight kernel.Weight,
	status Status,
	requestedBy kernel.UUID,
	requestedAt time.Time,
	approvedBy *kernel.UUID, approvedAt *time.Time,
	rejectedBy *kernel.UUID, rejectedAt *time.Time,
	rejectionReason string,
	version int,
) (*Transfer, error) {
	t := &Transfer{
		requestedAt:     requestedAt,
		approvedBy:      approvedBy,
		approvedAt:      approvedAt,
		rejectedBy:      rejectedBy,
		rejectedAt:      rejectedAt,
		rejectionReason: rejectionReason,
		version:         version,
		isConstructed:   true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setStages(fromStage, toStage),
		t.setWeight(weight),
		t.setRequestedBy(requestedBy),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	t.status = status
	return t, nil
}

// Validate ensures the Transfer was constructed through a factory function.
func (t *Transfer) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransferIsNotConstructed
	}
	return nil
}

// ID returns the transfer's unique identifier.
func (t *Transfer) ID() kernel.UUID {
	return t.id
}

// OrderID returns the order whose material the transfer moves.
func (t *Transfer) OrderID() kernel.UUID {
	return t.orderID
}

// FromStage returns the stage releasing the material.
func (t *Transfer) FromStage() order.Stage {
	return t.fromStage
}

// ToStage returns the stage receiving the material. Its owners approve.
func (t *Transfer) ToStage() order.Stage {
	return t.toStage
}

// Weight returns the quantity being moved.
func (t *Transfer) Weight() kernel.Weight {
	return t.weight
}

// Status returns the transfer's current status.
func (t *Transfer) Status() Status {
	return t.status
}

// RequestedBy returns the actor who requested the transfer.
func (t *Transfer) RequestedBy() kernel.UUID {
	return t.requestedBy
}

// RequestedAt returns when the transfer was requested.
func (t *Transfer) RequestedAt() time.Time {
	return t.requestedAt
}

// ApprovedBy returns the approver, nil unless approved.
func (t *Transfer) ApprovedBy() *kernel.UUID {
	return t.approvedBy
}

// ApprovedAt returns the approval time, nil unless approved.
func (t *Transfer) ApprovedAt() *time.Time {
	return t.approvedAt
}

// RejectedBy returns the rejecting actor, nil unless rejected.
func (t *Transfer) RejectedBy() *kernel.UUID {
	return t.rejectedBy
}

// RejectedAt returns the rejection time, nil unless rejected.
func (t *Transfer) RejectedAt() *time.Time {
	return t.rejectedAt
}

// RejectionReason returns the mandatory reason given on rejection.
func (t *Transfer) RejectionReason() string {
	return t.rejectionReason
}

// Version returns the optimistic concurrency token loaded with the aggregate.
func (t *Transfer) Version() int {
	return t.version
}

// IsRequestedBy reports whether actorID requested this transfer.
func (t *Transfer) IsRequestedBy(actorID kernel.UUID) bool {
	return t.requestedBy.IsEqual(actorID)
}

// Approve resolves the transfer as accepted. The capability check belongs to
// the approval gate; the aggregate enforces the state machine and the
// no-self-approval rule.
func (t *Transfer) Approve(approvedBy kernel.UUID) error {
	if err := approvedBy.Validate(); err != nil {
		return err
	}
	if t.IsRequestedBy(approvedBy) {
		return ErrSelfApproval
	}

	newStatus, err := t.status.Approve()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.approvedBy = &approvedBy
	t.approvedAt = &now
	return nil
}

// Reject resolves the transfer as refused. The reason is mandatory and must
// be at least MinRejectionReasonLength characters.
func (t *Transfer) Reject(rejectedBy kernel.UUID, reason string) error {
	if err := rejectedBy.Validate(); err != nil {
		return err
	}
	if t.IsRequestedBy(rejectedBy) {
		return ErrSelfApproval
	}
	if len(reason) < MinRejectionReasonLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"rejection reason",
			fmt.Errorf("reason must be at least %d characters", MinRejectionReasonLength),
		)
	}

	newStatus, err := t.status.Reject()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.rejectedBy = &rejectedBy
	t.rejectedAt = &now
	t.rejectionReason = reason
	return nil
}

func (t *Transfer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transfer) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *Transfer) setStages(fromStage, toStage order.Stage) error {
	if err := errors.Join(fromStage.Validate(), toStage.Validate()); err != nil {
		return err
	}
	if !fromStage.IsWorkflowStage() || !toStage.IsWorkflowStage() || toStage <= fromStage {
		return errs.NewValueIsInvalidErrorWithCause(
			"stages",
			fmt.Errorf("%s to %s is not a forward stage move", fromStage.String(), toStage.String()),
		)
	}
	t.fromStage = fromStage
	t.toStage = toStage
	return nil
}

func (t *Transfer) setWeight(weight kernel.Weight) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%s is not greater than 0", weight.String()),
		)
	}
	t.weight = weight
	return nil
}

func (t *Transfer) setRequestedBy(requestedBy kernel.UUID) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}
	t.requestedBy = requestedBy
	return nil
}
