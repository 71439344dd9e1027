package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
)

// ConfirmHandoverCommandHandler completes a pending handover, lifting the
// advance gate on the record's stage.
type ConfirmHandoverCommandHandler struct {
	uowFactory ProcessingUoWFactory
	recorder   audittrail.Recorder
}

// NewConfirmHandoverCommandHandler creates a handler for handover confirmation.
func NewConfirmHandoverCommandHandler(
	uowFactory ProcessingUoWFactory,
	recorder audittrail.Recorder,
) ConfirmHandoverCommandHandler {
	return ConfirmHandoverCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the handover confirmation command.
func (h *ConfirmHandoverCommandHandler) Handle(ctx context.Context, cmd ConfirmHandoverCommand) error {
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

	record, err := uow.ProcessingRepository().Get(ctx, cmd.RecordID())
	if err != nil {
		return err
	}

	if err = record.ConfirmHandover(cmd.ActorID()); err != nil {
		return err
	}

	if err = uow.ProcessingRepository().Update(ctx, record); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventHandoverConfirmed, "order_processing", record.ID().String(), &actorID,
		nil, map[string]any{
			"order_id": record.OrderID().String(),
			"stage":    record.Stage().String(),
		}, "", nil)

	return uow.Commit(ctx)
}
