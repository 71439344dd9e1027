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
	// ErrNotSortingStage is returned when a sorting operation is invoked on a
	// record belonging to a different stage.
	ErrNotSortingStage = errors.New("record does not belong to the sorting stage")

	// ErrSortingAlreadyApproved is returned when an approved sorting result
	// receives another approval.
	ErrSortingAlreadyApproved = errors.New("sorting result is already approved")

	// ErrSortingNotApproved is returned when the sorting output is released
	// before its result is approved.
	ErrSortingNotApproved = errors.New("sorting result is not approved")

	// ErrSortingResultMissing is returned when approval precedes the recorded
	// two-roll split.
	ErrSortingResultMissing = errors.New("sorting result has not been recorded")
)

// Roll describes one output roll produced by the sorting split: its weight,
// its width in millimeters, and where it was placed.
type Roll struct {
	Weight   kernel.Weight
	Width    float64
	Location string
}

// Validate checks the roll has a positive width and a location.
func (r Roll) Validate() error {
	if r.Width <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("roll width", fmt.Errorf("%v is not positive", r.Width))
	}
	if r.Location == "" {
		return errs.NewValueIsRequiredError("roll location")
	}
	return nil
}

// sortingState groups the sorting-stage fields of a Record. Only meaningful
// when the record's stage is order.Sorting.
type sortingState struct {
	approved   bool
	approvedBy *kernel.UUID
	approvedAt *time.Time

	roll1       *Roll
	roll2       *Roll
	wasteWeight kernel.Weight

	postSortingDestination Destination
	destinationWarehouseID *kernel.UUID
	transferCompleted      bool
	transferCompletedAt    *time.Time
}

// SortingApproved reports whether the sorting result has been approved.
func (r *Record) SortingApproved() bool {
	return r.sorting.approved
}

// SortingApprovedBy returns the approver of the sorting result.
func (r *Record) SortingApprovedBy() *kernel.UUID {
	return r.sorting.approvedBy
}

// SortingApprovedAt returns when the sorting result was approved.
func (r *Record) SortingApprovedAt() *time.Time {
	return r.sorting.approvedAt
}

// Roll1 returns the first output roll, nil before the split is recorded.
func (r *Record) Roll1() *Roll {
	return r.sorting.roll1
}

// Roll2 returns the second output roll, nil before the split is recorded.
func (r *Record) Roll2() *Roll {
	return r.sorting.roll2
}

// WasteWeight returns the weight written off as waste by the split.
func (r *Record) WasteWeight() kernel.Weight {
	return r.sorting.wasteWeight
}

// PostSortingDestination returns where the output was released to.
func (r *Record) PostSortingDestination() Destination {
	return r.sorting.postSortingDestination
}

// DestinationWarehouseID returns the chosen warehouse for OtherWarehouse
// releases, nil otherwise.
func (r *Record) DestinationWarehouseID() *kernel.UUID {
	return r.sorting.destinationWarehouseID
}

// SortingTransferCompleted reports whether the output left the stage.
func (r *Record) SortingTransferCompleted() bool {
	return r.sorting.transferCompleted
}

// SortingTransferCompletedAt returns when the output left the stage.
func (r *Record) SortingTransferCompletedAt() *time.Time {
	return r.sorting.transferCompletedAt
}

// RecordSortingResult stores the two-roll split and the waste write-off.
// Only valid on sorting-stage records that are not yet approved.
func (r *Record) RecordSortingResult(roll1, roll2 Roll, wasteWeight kernel.Weight) error {
	if r.stage != order.Sorting {
		return ErrNotSortingStage
	}
	if r.sorting.approved {
		return ErrSortingAlreadyApproved
	}
	if err := errors.Join(roll1.Validate(), roll2.Validate()); err != nil {
		return err
	}

	r.sorting.roll1 = &roll1
	r.sorting.roll2 = &roll2
	r.sorting.wasteWeight = wasteWeight
	return nil
}

// ApproveSorting approves the recorded split. The capability check (actor
// assigned to the stage or holding an override) belongs to the use case layer.
//
// The conservation check roll1 + roll2 + waste ~= received is a warning, not a
// hard gate: manual scale overrides are legitimate, so a discrepancy beyond
// the tolerance is returned as a non-empty warning string while the approval
// still succeeds.
func (r *Record) ApproveSorting(approvedBy kernel.UUID) (string, error) {
	if err := approvedBy.Validate(); err != nil {
		return "", err
	}
	if r.stage != order.Sorting {
		return "", ErrNotSortingStage
	}
	if r.sorting.approved {
		return "", ErrSortingAlreadyApproved
	}
	if r.sorting.roll1 == nil || r.sorting.roll2 == nil {
		return "", ErrSortingResultMissing
	}

	now := time.Now().UTC()
	r.sorting.approved = true
	r.sorting.approvedBy = &approvedBy
	r.sorting.approvedAt = &now

	accounted := r.sorting.roll1.Weight.Add(r.sorting.roll2.Weight).Add(r.sorting.wasteWeight)
	if !accounted.ApproxEqual(r.weightReceived) {
		return fmt.Sprintf(
			"sorting split accounts for %s but the stage received %s",
			accounted.String(), r.weightReceived.String(),
		), nil
	}

	return "", nil
}

// CompleteSortingTransfer releases the approved output to its destination.
// OtherWarehouse requires a destination warehouse identifier. A second call
// after completion fails with errs.ErrAlreadyTransferred; the operation never
// silently repeats.
func (r *Record) CompleteSortingTransfer(destination Destination, warehouseID *kernel.UUID) error {
	if r.stage != order.Sorting {
		return ErrNotSortingStage
	}
	if !r.sorting.approved {
		return ErrSortingNotApproved
	}
	if r.sorting.transferCompleted {
		return errs.ErrAlreadyTransferred
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	if destination == OtherWarehouse {
		if warehouseID == nil {
			return errs.ErrMissingDestination
		}
		if err := warehouseID.Validate(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	r.sorting.postSortingDestination = destination
	r.sorting.destinationWarehouseID = warehouseID
	r.sorting.transferCompleted = true
	r.sorting.transferCompletedAt = &now
	return nil
}
