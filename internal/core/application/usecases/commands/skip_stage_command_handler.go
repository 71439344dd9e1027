package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// SkipStageCapability is the elevated capability required to skip stages.
const SkipStageCapability = "orders.skip_stage"

// SkipStageCommandHandler moves an order forward past intermediate stages.
// Unlike a normal advance it requires the dedicated skip capability rather
// than authority over the target stage.
type SkipStageCommandHandler struct {
	uowFactory OrderProcessingUoWFactory
	authority  ports.AuthorityProvider
	recorder   audittrail.Recorder
}

// NewSkipStageCommandHandler creates a handler for stage skipping.
func NewSkipStageCommandHandler(
	uowFactory OrderProcessingUoWFactory,
	authority ports.AuthorityProvider,
	recorder audittrail.Recorder,
) SkipStageCommandHandler {
	return SkipStageCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		recorder:   recorder,
	}
}

// Handle processes the stage skip command.
func (h *SkipStageCommandHandler) Handle(ctx context.Context, cmd SkipStageCommand) error {
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

	allowed, err := h.authority.HasCapability(ctx, cmd.ActorID(), SkipStageCapability)
	if err != nil {
		return err
	}
	if !allowed {
		recordDeniedAttempt(ctx, h.recorder, uow, "order", cmd.OrderID().String(),
			cmd.ActorID(), SkipStageCapability, "stage skip denied")
		return errs.NewUnauthorizedError(cmd.ActorID().String(), SkipStageCapability)
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStage := o.Stage()

	if err = o.SkipTo(cmd.TargetStage()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventStageSkipped, "order", o.ID().String(), &actorID,
		map[string]any{"stage": fromStage.String()},
		map[string]any{"stage": o.Stage().String()},
		"", map[string]any{"reason": cmd.Reason()})

	return uow.Commit(ctx)
}
