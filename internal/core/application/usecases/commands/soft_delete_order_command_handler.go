package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// AdminCapability guards the soft delete and restore operations.
const AdminCapability = "orders.admin"

// SoftDeleteOrderCommandHandler soft-deletes an order and audits the removal.
type SoftDeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	authority  ports.AuthorityProvider
	recorder   audittrail.Recorder
}

// NewSoftDeleteOrderCommandHandler creates a handler for order soft deletion.
func NewSoftDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	authority ports.AuthorityProvider,
	recorder audittrail.Recorder,
) SoftDeleteOrderCommandHandler {
	return SoftDeleteOrderCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		recorder:   recorder,
	}
}

// Handle processes the soft delete command.
func (h *SoftDeleteOrderCommandHandler) Handle(ctx context.Context, cmd SoftDeleteOrderCommand) error {
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
			cmd.ActorID(), AdminCapability, "order soft delete denied")
		return errs.NewUnauthorizedError(cmd.ActorID().String(), AdminCapability)
	}

	// Existence check keeps the audit trail honest: no entry for a miss.
	if _, err = uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().SoftDelete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventSoftDeleted, "order", cmd.OrderID().String(), &actorID,
		nil, nil, "order soft-deleted by admin", nil)

	return uow.Commit(ctx)
}
