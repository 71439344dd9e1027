package services

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/pkg/errs"
)

// Authority answers capability questions for actors. Implemented by the
// external authority provider; the gate never inspects role internals.
type Authority interface {
	HasCapability(ctx context.Context, actorID kernel.UUID, capability string) (bool, error)
}

// ApprovalGate decides who may resolve a weight transfer and performs the
// pending -> approved/rejected transition on the aggregate. Authority over the
// RECEIVING stage is required: the side taking the material vouches for it.
type ApprovalGate struct {
	authority Authority
}

// NewApprovalGate creates the gate over an authority provider.
func NewApprovalGate(authority Authority) ApprovalGate {
	return ApprovalGate{authority: authority}
}

// CanApprove reports whether the actor may resolve the transfer: the actor
// must hold the capability of the receiving stage and must not be the
// requester.
func (g ApprovalGate) CanApprove(ctx context.Context, actorID kernel.UUID, t *transfer.Transfer) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	if t.IsRequestedBy(actorID) {
		return false, nil
	}

	ok, err := g.authority.HasCapability(ctx, actorID, t.ToStage().CapabilityName())
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Approve resolves the transfer as accepted. Fails with errs.ErrUnauthorized
// when CanApprove is false, and with errs.ErrAlreadyResolved for transfers in
// a terminal state.
func (g ApprovalGate) Approve(ctx context.Context, actorID kernel.UUID, t *transfer.Transfer) error {
	ok, err := g.CanApprove(ctx, actorID, t)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewUnauthorizedError(actorID.String(), t.ToStage().CapabilityName())
	}

	return t.Approve(actorID)
}

// Reject resolves the transfer as refused with a mandatory reason. Same
// preconditions as Approve.
func (g ApprovalGate) Reject(ctx context.Context, actorID kernel.UUID, t *transfer.Transfer, reason string) error {
	ok, err := g.CanApprove(ctx, actorID, t)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewUnauthorizedError(actorID.String(), t.ToStage().CapabilityName())
	}

	return t.Reject(actorID, reason)
}
