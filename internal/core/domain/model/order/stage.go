package order

import (
	"fmt"

	"millflow/internal/pkg/errs"
)

// Stage represents a step in the fixed production sequence an order moves
// through. It implements a state machine whose common path is advance-only:
//
//	Creation -> Review -> MaterialReservation -> Sorting -> Cutting
//	        -> Packaging -> Invoicing -> Delivery -> Delivered
//
// Delivered and Cancelled are terminal. Cancelled is reachable from any
// non-terminal stage by an authorized actor. Skipping stages is a separate,
// elevated operation and is validated by ValidateSkipTo rather than
// ValidateAdvanceTo.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// Creation is the intake stage where the order is first recorded.
	Creation

	// Review is the commercial review stage preceding material work.
	Review

	// MaterialReservation reserves raw material against the order.
	MaterialReservation

	// Sorting splits received material into output rolls and waste.
	Sorting

	// Cutting cuts sorted material to the ordered dimensions.
	Cutting

	// Packaging packs cut material for shipment.
	Packaging

	// Invoicing issues the invoice from the priced order.
	Invoicing

	// Delivery hands the packaged order to the carrier.
	Delivery

	// Delivered is the terminal success state.
	Delivered

	// Cancelled is the terminal abort state, reachable from any
	// non-terminal stage.
	Cancelled
)

// getStageStrings returns the string representation for every Stage value.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:        "Unknown",
		Creation:            "Creation",
		Review:              "Review",
		MaterialReservation: "MaterialReservation",
		Sorting:             "Sorting",
		Cutting:             "Cutting",
		Packaging:           "Packaging",
		Invoicing:           "Invoicing",
		Delivery:            "Delivery",
		Delivered:           "Delivered",
		Cancelled:           "Cancelled",
	}
}

// getCapabilityNames returns the capability an actor must hold to move an
// order into each stage. The authority provider resolves these names; the
// core never inspects role internals.
func getCapabilityNames() map[Stage]string {
	return map[Stage]string{
		Creation:            "stage.creation",
		Review:              "stage.review",
		MaterialReservation: "stage.material_reservation",
		Sorting:             "stage.sorting",
		Cutting:             "stage.cutting",
		Packaging:           "stage.packaging",
		Invoicing:           "stage.invoicing",
		Delivery:            "stage.delivery",
		Delivered:           "stage.delivery",
	}
}

// StageFromString parses a stage name as produced by String.
func StageFromString(s string) (Stage, error) {
	for stage, name := range getStageStrings() {
		if stage != StageUnknown && name == s {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", s))
}

// Validate checks that the Stage is one of the defined values.
// StageUnknown and out-of-range values are invalid.
func (s Stage) Validate() error {
	if s <= StageUnknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the stage name, or "Unknown" for invalid values.
// Implements fmt.Stringer.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Stage) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsWorkflowStage reports whether the stage is part of the ordered production
// sequence (Creation through Delivery), as opposed to a terminal state.
func (s Stage) IsWorkflowStage() bool {
	return s >= Creation && s <= Delivery
}

// CapabilityName returns the capability name required to move an order into
// this stage, e.g. "stage.sorting". Empty for Cancelled, which is gated by the
// dedicated orders.cancel capability instead.
func (s Stage) CapabilityName() string {
	return getCapabilityNames()[s]
}

// Next returns the immediate successor on the common path.
// Delivery's successor is the terminal Delivered state.
// Fails for terminal stages and invalid values.
func (s Stage) Next() (Stage, error) {
	if !s.IsWorkflowStage() {
		return StageUnknown, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s has no successor", s.String()),
		)
	}
	return s + 1, nil
}

// ValidateAdvanceTo checks that target is the immediate successor of s.
// Any other forward or backward move fails with errs.ErrOutOfOrder; moving an
// order across multiple stages requires the explicit skip operation.
func (s Stage) ValidateAdvanceTo(target Stage) error {
	next, err := s.Next()
	if err != nil {
		return err
	}
	if target != next {
		return fmt.Errorf("%w: %s does not immediately follow %s", errs.ErrOutOfOrder, target.String(), s.String())
	}
	return nil
}

// ValidateSkipTo checks that target is a later workflow stage than s (or the
// terminal Delivered state). Backward moves and no-op skips are rejected.
func (s Stage) ValidateSkipTo(target Stage) error {
	if !s.IsWorkflowStage() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("cannot skip from %s", s.String()),
		)
	}
	if target <= s || target == Cancelled || target.Validate() != nil {
		return fmt.Errorf("%w: cannot skip from %s to %s", errs.ErrOutOfOrder, s.String(), target.String())
	}
	return nil
}

// Cancel transitions to the terminal Cancelled state.
// Fails for stages that are already terminal.
func (s Stage) Cancel() (Stage, error) {
	if s.IsTerminal() {
		return StageUnknown, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s is terminal and cannot be cancelled", s.String()),
		)
	}
	if err := s.Validate(); err != nil {
		return StageUnknown, err
	}
	return Cancelled, nil
}
