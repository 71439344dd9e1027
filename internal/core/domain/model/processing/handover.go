package processing

import (
	"errors"
	"time"

	"millflow/internal/core/domain/model/kernel"
)

var (
	// ErrHandoverNotMandatory is returned when a handover is requested on a
	// record that does not require one.
	ErrHandoverNotMandatory = errors.New("record does not require a handover")

	// ErrHandoverAlreadyRequested is returned when a pending handover receives
	// another request.
	ErrHandoverAlreadyRequested = errors.New("handover is already requested")

	// ErrHandoverNotRequested is returned when a handover is confirmed before
	// being requested.
	ErrHandoverNotRequested = errors.New("handover has not been requested")

	// ErrHandoverSelfConfirm is returned when the requesting actor tries to
	// confirm their own handover.
	ErrHandoverSelfConfirm = errors.New("handover must be confirmed by a different actor")
)

// MandatoryHandover reports whether stage advance is gated on a completed
// handover for this record.
func (r *Record) MandatoryHandover() bool {
	return r.mandatoryHandover
}

// HandoverStatus returns the current handover sub-state.
func (r *Record) HandoverStatus() HandoverStatus {
	return r.handoverStatus
}

// HandoverFrom returns the actor who requested the handover.
func (r *Record) HandoverFrom() *kernel.UUID {
	return r.handoverFrom
}

// HandoverTo returns the actor who confirmed the handover.
func (r *Record) HandoverTo() *kernel.UUID {
	return r.handoverTo
}

// HandoverRequestedAt returns when the handover was requested.
func (r *Record) HandoverRequestedAt() *time.Time {
	return r.handoverRequestedAt
}

// HandoverCompletedAt returns when the handover completed.
func (r *Record) HandoverCompletedAt() *time.Time {
	return r.handoverCompletedAt
}

// HandoverComplete reports whether the record no longer blocks stage
// advance: either no handover is mandatory, or it has completed.
func (r *Record) HandoverComplete() bool {
	return !r.mandatoryHandover || r.handoverStatus == HandoverCompleted
}

// RequestHandover starts the hand-off of stage ownership. Only valid on
// records with a mandatory handover that has not been requested yet.
func (r *Record) RequestHandover(requestedBy kernel.UUID) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}
	if !r.mandatoryHandover {
		return ErrHandoverNotMandatory
	}
	if r.handoverStatus != HandoverNotRequired {
		return ErrHandoverAlreadyRequested
	}

	now := time.Now().UTC()
	r.handoverStatus = HandoverPending
	r.handoverFrom = &requestedBy
	r.handoverRequestedAt = &now
	return nil
}

// ConfirmHandover completes the hand-off. The confirmer must differ from the
// requester; fails with ErrHandoverSelfConfirm otherwise.
func (r *Record) ConfirmHandover(confirmedBy kernel.UUID) error {
	if err := confirmedBy.Validate(); err != nil {
		return err
	}
	if r.handoverStatus != HandoverPending && r.handoverStatus != HandoverInProgress {
		return ErrHandoverNotRequested
	}
	if r.handoverFrom != nil && r.handoverFrom.IsEqual(confirmedBy) {
		return ErrHandoverSelfConfirm
	}

	now := time.Now().UTC()
	r.handoverStatus = HandoverCompleted
	r.handoverTo = &confirmedBy
	r.handoverCompletedAt = &now
	return nil
}
