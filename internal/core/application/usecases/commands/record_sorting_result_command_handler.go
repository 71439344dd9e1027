package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
)

// RecordSortingResultCommandHandler stores the two-roll split on the sorting
// record. Recording can repeat until the result is approved.
type RecordSortingResultCommandHandler struct {
	uowFactory ProcessingUoWFactory
	recorder   audittrail.Recorder
}

// NewRecordSortingResultCommandHandler creates a handler for sorting results.
func NewRecordSortingResultCommandHandler(
	uowFactory ProcessingUoWFactory,
	recorder audittrail.Recorder,
) RecordSortingResultCommandHandler {
	return RecordSortingResultCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the sorting result command.
func (h *RecordSortingResultCommandHandler) Handle(ctx context.Context, cmd RecordSortingResultCommand) error {
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

	if err = record.RecordSortingResult(cmd.Roll1(), cmd.Roll2(), cmd.WasteWeight()); err != nil {
		return err
	}

	if err = uow.ProcessingRepository().Update(ctx, record); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Updated(ctx, uow.AuditLogRepository(),
		"order_processing", record.ID().String(), &actorID,
		nil, map[string]any{
			"roll1_weight": cmd.Roll1().Weight.Kilograms(),
			"roll2_weight": cmd.Roll2().Weight.Kilograms(),
			"waste_weight": cmd.WasteWeight().Kilograms(),
		})

	return uow.Commit(ctx)
}
