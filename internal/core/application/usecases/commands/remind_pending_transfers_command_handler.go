package commands

import (
	"context"
	"log/slog"

	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/core/ports"
)

// RemindPendingTransfersCommandHandler re-notifies the approvers of every
// pending weight transfer. The sweep is read-only; delivery failures are
// logged and never fail the sweep.
type RemindPendingTransfersCommandHandler struct {
	uowFactory TransferUoWFactory
	authority  ports.AuthorityProvider
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewRemindPendingTransfersCommandHandler creates a handler for the reminder
// sweep.
func NewRemindPendingTransfersCommandHandler(
	uowFactory TransferUoWFactory,
	authority ports.AuthorityProvider,
	notifier ports.Notifier,
	log *slog.Logger,
) RemindPendingTransfersCommandHandler {
	return RemindPendingTransfersCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		notifier:   notifier,
		log:        log.With("component", "remind_pending_transfers"),
	}
}

// Handle processes the reminder sweep command.
func (h *RemindPendingTransfersCommandHandler) Handle(ctx context.Context, cmd RemindPendingTransfersCommand) error {
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

	pending, err := uow.TransferRepository().GetAllPending(ctx)
	if err != nil {
		return err
	}

	for _, t := range pending {
		h.remind(ctx, t)
	}

	return nil
}

func (h *RemindPendingTransfersCommandHandler) remind(ctx context.Context, t *transfer.Transfer) {
	approvers, err := h.authority.ApproversFor(ctx, t.ToStage().CapabilityName())
	if err != nil {
		h.log.WarnContext(ctx, "failed to resolve approvers for reminder",
			"transfer_id", t.ID().String(),
			"to_stage", t.ToStage().String(),
			"error", err,
		)
		return
	}

	payload := map[string]any{
		"transfer_id":  t.ID().String(),
		"order_id":     t.OrderID().String(),
		"from_stage":   t.FromStage().String(),
		"to_stage":     t.ToStage().String(),
		"weight_kg":    t.Weight().Kilograms(),
		"requested_at": t.RequestedAt(),
	}

	for _, approver := range approvers {
		if err := h.notifier.Notify(ctx, approver.ID, "transfer_pending_reminder", payload); err != nil {
			h.log.WarnContext(ctx, "failed to deliver transfer reminder",
				"transfer_id", t.ID().String(),
				"approver_id", approver.ID.String(),
				"error", err,
			)
		}
	}
}
