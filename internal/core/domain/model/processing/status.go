package processing

import (
	"fmt"

	"millflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a processing record within its
// stage. Records start Pending, move to InProgress when material work begins,
// and end Completed or Cancelled.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending means the record exists but stage work has not started.
	// Records created lazily by an incoming transfer start here.
	Pending

	// InProgress means the stage is actively handling material.
	InProgress

	// Completed means the stage finished its work on the order.
	Completed

	// Cancelled means the stage was aborted together with the order.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		InProgress:    "InProgress",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid processing status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status allows no further work.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// HandoverStatus tracks the explicit hand-off of stage ownership between two
// distinct actors. Only meaningful when the record's mandatory handover flag
// is set; NotRequired otherwise.
type HandoverStatus int

const (
	// HandoverNotRequired means no handover gates this record.
	HandoverNotRequired HandoverStatus = iota

	// HandoverPending means a handover was requested and awaits confirmation.
	HandoverPending

	// HandoverInProgress means the receiving actor acknowledged the handover
	// but has not confirmed completion.
	HandoverInProgress

	// HandoverCompleted means the handover finished; stage advance is unblocked.
	HandoverCompleted
)

func getHandoverStatusStrings() map[HandoverStatus]string {
	return map[HandoverStatus]string{
		HandoverNotRequired: "NotRequired",
		HandoverPending:     "Pending",
		HandoverInProgress:  "InProgress",
		HandoverCompleted:   "Completed",
	}
}

// Validate checks that the HandoverStatus is one of the defined values.
func (h HandoverStatus) Validate() error {
	if h < HandoverNotRequired || h > HandoverCompleted {
		return errs.NewValueIsInvalidErrorWithCause("handover status", fmt.Errorf("%d is not a valid handover status", h))
	}
	return nil
}

// String returns the handover status name.
func (h HandoverStatus) String() string {
	if str, ok := getHandoverStatusStrings()[h]; ok {
		return str
	}
	return "Unknown"
}
