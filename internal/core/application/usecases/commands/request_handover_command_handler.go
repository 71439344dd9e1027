package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
)

// RequestHandoverCommandHandler opens a pending handover on a processing
// record with a mandatory handover requirement.
type RequestHandoverCommandHandler struct {
	uowFactory ProcessingUoWFactory
	recorder   audittrail.Recorder
}

// NewRequestHandoverCommandHandler creates a handler for handover requests.
func NewRequestHandoverCommandHandler(
	uowFactory ProcessingUoWFactory,
	recorder audittrail.Recorder,
) RequestHandoverCommandHandler {
	return RequestHandoverCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the handover request command.
func (h *RequestHandoverCommandHandler) Handle(ctx context.Context, cmd RequestHandoverCommand) error {
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

	if err = record.RequestHandover(cmd.ActorID()); err != nil {
		return err
	}

	if err = uow.ProcessingRepository().Update(ctx, record); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventHandoverRequested, "order_processing", record.ID().String(), &actorID,
		nil, map[string]any{
			"order_id": record.OrderID().String(),
			"stage":    record.Stage().String(),
		}, "", nil)

	return uow.Commit(ctx)
}
