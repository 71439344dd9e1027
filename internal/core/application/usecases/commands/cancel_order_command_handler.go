package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// CancelOrderCapability is required to cancel orders.
const CancelOrderCapability = "orders.cancel"

// CancelOrderCommandHandler aborts an order: the order moves to the terminal
// Cancelled stage and every open processing record is cancelled with it.
type CancelOrderCommandHandler struct {
	uowFactory OrderProcessingUoWFactory
	authority  ports.AuthorityProvider
	recorder   audittrail.Recorder
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderProcessingUoWFactory,
	authority ports.AuthorityProvider,
	recorder audittrail.Recorder,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		recorder:   recorder,
	}
}

// Handle processes the order cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	allowed, err := h.authority.HasCapability(ctx, cmd.ActorID(), CancelOrderCapability)
	if err != nil {
		return err
	}
	if !allowed {
		recordDeniedAttempt(ctx, h.recorder, uow, "order", cmd.OrderID().String(),
			cmd.ActorID(), CancelOrderCapability, "order cancellation denied")
		return errs.NewUnauthorizedError(cmd.ActorID().String(), CancelOrderCapability)
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStage := o.Stage()

	if err = o.Cancel(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	records, err := uow.ProcessingRepository().GetAllForOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	for _, record := range records {
		if record.Status().IsTerminal() {
			continue
		}
		if err = record.Cancel(); err != nil {
			return err
		}
		if err = uow.ProcessingRepository().Update(ctx, record); err != nil {
			return err
		}
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventOrderCancelled, "order", o.ID().String(), &actorID,
		map[string]any{"stage": fromStage.String()},
		map[string]any{"stage": o.Stage().String()},
		"", map[string]any{"reason": cmd.Reason()})

	return uow.Commit(ctx)
}
