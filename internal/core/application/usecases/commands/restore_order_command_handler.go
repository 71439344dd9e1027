package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// RestoreOrderCommandHandler reverses a soft delete and audits the restore.
type RestoreOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	authority  ports.AuthorityProvider
	recorder   audittrail.Recorder
}

// NewRestoreOrderCommandHandler creates a handler for order restoration.
func NewRestoreOrderCommandHandler(
	uowFactory OrderUoWFactory,
	authority ports.AuthorityProvider,
	recorder audittrail.Recorder,
) RestoreOrderCommandHandler {
	return RestoreOrderCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		recorder:   recorder,
	}
}

// Handle processes the restore command.
func (h *RestoreOrderCommandHandler) Handle(ctx context.Context, cmd RestoreOrderCommand) error {
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

	allowed, err := h.authority.HasCapability(ctx, cmd.ActorID(), AdminCapability)
	if err != nil {
		return err
	}
	if !allowed {
		recordDeniedAttempt(ctx, h.recorder, uow, "order", cmd.OrderID().String(),
			cmd.ActorID(), AdminCapability, "order restore denied")
		return errs.NewUnauthorizedError(cmd.ActorID().String(), AdminCapability)
	}

	if err = uow.OrderRepository().Restore(ctx, cmd.OrderID()); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventRestored, "order", cmd.OrderID().String(), &actorID,
		nil, nil, "order restored by admin", nil)

	return uow.Commit(ctx)
}
