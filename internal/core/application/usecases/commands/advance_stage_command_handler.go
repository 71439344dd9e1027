package commands

import (
	"context"
	"errors"
	"fmt"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// AdvanceStageCommandHandler moves an order to its next workflow stage.
// The actor must hold authority over the target stage, and a mandatory
// handover on the outgoing stage blocks the advance until confirmed.
type AdvanceStageCommandHandler struct {
	uowFactory OrderProcessingUoWFactory
	authority  ports.AuthorityProvider
	recorder   audittrail.Recorder
}

// NewAdvanceStageCommandHandler creates a handler for stage advancement.
func NewAdvanceStageCommandHandler(
	uowFactory OrderProcessingUoWFactory,
	authority ports.AuthorityProvider,
	recorder audittrail.Recorder,
) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		recorder:   recorder,
	}
}

// Handle processes the stage advance command.
func (h *AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	capability := cmd.TargetStage().CapabilityName()
	allowed, err := h.authority.HasCapability(ctx, cmd.ActorID(), capability)
	if err != nil {
		return err
	}
	if !allowed {
		recordDeniedAttempt(ctx, h.recorder, uow, "order", cmd.OrderID().String(),
			cmd.ActorID(), capability, "stage advance denied")
		return errs.NewUnauthorizedError(cmd.ActorID().String(), capability)
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStage := o.Stage()

	// A mandatory handover on the outgoing stage gates the advance. Stages
	// the order never physically entered have no record and nothing to gate.
	outgoing, err := uow.ProcessingRepository().GetByOrderAndStage(ctx, o.ID(), fromStage)
	switch {
	case err == nil:
		if outgoing.MandatoryHandover() && !outgoing.HandoverComplete() {
			return fmt.Errorf("%w: stage %s", errs.ErrHandoverRequired, fromStage.String())
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// no record, no handover gate
	default:
		return err
	}

	if err = o.AdvanceTo(cmd.TargetStage()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventWorkflowTransition, "order", o.ID().String(), &actorID,
		map[string]any{"stage": fromStage.String()},
		map[string]any{"stage": o.Stage().String()},
		"", nil)

	return uow.Commit(ctx)
}
