package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
)

// CompleteSortingTransferCommandHandler completes the one-shot post-sorting
// transfer. Repeating the call fails with errs.ErrAlreadyTransferred and
// writes no second audit entry.
type CompleteSortingTransferCommandHandler struct {
	uowFactory ProcessingUoWFactory
	recorder   audittrail.Recorder
}

// NewCompleteSortingTransferCommandHandler creates a handler for the
// post-sorting transfer.
func NewCompleteSortingTransferCommandHandler(
	uowFactory ProcessingUoWFactory,
	recorder audittrail.Recorder,
) CompleteSortingTransferCommandHandler {
	return CompleteSortingTransferCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the sorting transfer command.
func (h *CompleteSortingTransferCommandHandler) Handle(ctx context.Context, cmd CompleteSortingTransferCommand) error {
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

	if err = record.CompleteSortingTransfer(cmd.Destination(), cmd.WarehouseID()); err != nil {
		return err
	}

	if err = uow.ProcessingRepository().Update(ctx, record); err != nil {
		return err
	}

	newValues := map[string]any{
		"order_id":    record.OrderID().String(),
		"destination": cmd.Destination().String(),
	}
	if cmd.WarehouseID() != nil {
		newValues["warehouse_id"] = cmd.WarehouseID().String()
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventSortingTransferCompleted, "order_processing", record.ID().String(), &actorID,
		nil, newValues, "", nil)

	return uow.Commit(ctx)
}
