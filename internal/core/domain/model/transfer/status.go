package transfer

import (
	"fmt"

	"millflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a weight transfer.
// It implements a two-step state machine with terminal outcomes:
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Approved and Rejected are terminal: no transition leads back to Pending and
// resolved transfers refuse further resolution attempts.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status: the transfer awaits an approver.
	Pending

	// Approved means the receiving stage accepted the material. Terminal.
	Approved

	// Rejected means the receiving stage refused the material. Terminal.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Approved:      "Approved",
		Rejected:      "Rejected",
	}
}

// Validate checks that the Status is one of the defined values.
func (s Status) Validate() error {
	if s < Pending || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid transfer status", s))
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

// IsResolved reports whether the transfer reached a terminal outcome.
func (s Status) IsResolved() bool {
	return s == Approved || s == Rejected
}

// Approve transitions Pending to Approved.
// Fails with errs.ErrAlreadyResolved for resolved transfers.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return StatusUnknown, fmt.Errorf("%w: status is %s", errs.ErrAlreadyResolved, s.String())
	}
	return Approved, nil
}

// Reject transitions Pending to Rejected.
// Fails with errs.ErrAlreadyResolved for resolved transfers.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return StatusUnknown, fmt.Errorf("%w: status is %s", errs.ErrAlreadyResolved, s.String())
	}
	return Rejected, nil
}
