package commands

import (
	"context"
	"errors"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// ApproveSortingCapability overrides the stage-assignment requirement for
// sorting approval.
const ApproveSortingCapability = "sorting.approve"

// ApproveSortingCommandHandler approves a recorded sorting result. The actor
// must be assigned to the record or hold the override capability. A weight
// conservation mismatch between rolls, waste and received weight is recorded
// as a warning, not a failure.
type ApproveSortingCommandHandler struct {
	uowFactory ProcessingUoWFactory
	authority  ports.AuthorityProvider
	recorder   audittrail.Recorder
}

// NewApproveSortingCommandHandler creates a handler for sorting approval.
func NewApproveSortingCommandHandler(
	uowFactory ProcessingUoWFactory,
	authority ports.AuthorityProvider,
	recorder audittrail.Recorder,
) ApproveSortingCommandHandler {
	return ApproveSortingCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		recorder:   recorder,
	}
}

// Handle processes the sorting approval command. The returned warning, if
// any, describes a roll-split weight discrepancy the approver accepted.
func (h *ApproveSortingCommandHandler) Handle(ctx context.Context, cmd ApproveSortingCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.ProcessingRepository().Get(ctx, cmd.RecordID())
	if err != nil {
		return "", err
	}

	if err = h.authorize(ctx, cmd.ActorID(), record); err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			recordDeniedAttempt(ctx, h.recorder, uow, "order_processing", record.ID().String(),
				cmd.ActorID(), ApproveSortingCapability, "sorting approval denied")
		}
		return "", err
	}

	warning, err := record.ApproveSorting(cmd.ActorID())
	if err != nil {
		return "", err
	}

	if err = uow.ProcessingRepository().Update(ctx, record); err != nil {
		return "", err
	}

	var metadata map[string]any
	if warning != "" {
		metadata = map[string]any{"warning": warning}
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventSortingApproved, "order_processing", record.ID().String(), &actorID,
		nil, map[string]any{
			"order_id": record.OrderID().String(),
		}, "", metadata)

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return warning, nil
}

// authorize admits the actor assigned to the record, or anyone holding the
// override capability.
func (h *ApproveSortingCommandHandler) authorize(ctx context.Context, actorID kernel.UUID, record *processing.Record) error {
	if record.IsAssignedTo(actorID) {
		return nil
	}

	allowed, err := h.authority.HasCapability(ctx, actorID, ApproveSortingCapability)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewUnauthorizedError(actorID.String(), ApproveSortingCapability)
	}
	return nil
}
