package commands

import (
	"context"
	"errors"
	"log/slog"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/services"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"
)

// RejectTransferCommandHandler resolves a pending transfer to rejected.
// No weight moves; the requester is notified after commit.
type RejectTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	gate       services.ApprovalGate
	recorder   audittrail.Recorder
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewRejectTransferCommandHandler creates a handler for transfer rejection.
func NewRejectTransferCommandHandler(
	uowFactory TransferUoWFactory,
	gate services.ApprovalGate,
	recorder audittrail.Recorder,
	notifier ports.Notifier,
	log *slog.Logger,
) RejectTransferCommandHandler {
	return RejectTransferCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		recorder:   recorder,
		notifier:   notifier,
		log:        log.With("component", "reject_transfer"),
	}
}

// Handle processes the transfer rejection command.
func (h *RejectTransferCommandHandler) Handle(ctx context.Context, cmd RejectTransferCommand) error {
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

	t, err := uow.TransferRepository().Get(ctx, cmd.TransferID())
	if err != nil {
		return err
	}

	actorID := cmd.ActorID()
	if err = h.gate.Reject(ctx, actorID, t, cmd.Reason()); err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			recordDeniedAttempt(ctx, h.recorder, uow, "weight_transfer", t.ID().String(),
				actorID, t.ToStage().CapabilityName(), "transfer rejection denied")
		}
		return err
	}

	if err = uow.TransferRepository().Update(ctx, t); err != nil {
		return err
	}

	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventTransferRejected, "weight_transfer", t.ID().String(), &actorID,
		nil, map[string]any{
			"order_id": t.OrderID().String(),
			"to_stage": t.ToStage().String(),
			"reason":   cmd.Reason(),
		}, "", nil)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best-effort: the rejection is already committed.
	if err = h.notifier.Notify(ctx, t.RequestedBy(), "transfer_rejected", map[string]any{
		"transfer_id": t.ID().String(),
		"order_id":    t.OrderID().String(),
		"reason":      cmd.Reason(),
	}); err != nil {
		h.log.ErrorContext(ctx, "notify requester", "actor", t.RequestedBy().String(), "error", err)
	}

	return nil
}
