package commands

import (
	"context"
	"log/slog"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/core/domain/services"
	"millflow/internal/core/ports"
)

// RequestTransferCommandHandler creates a pending weight transfer after
// validating the source stage holds enough unallocated weight. Once the
// transfer is committed, every actor able to approve the receiving stage is
// notified; notification failures never roll back the transfer.
type RequestTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	ledger     services.WeightLedger
	recorder   audittrail.Recorder
	authority  ports.AuthorityProvider
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewRequestTransferCommandHandler creates a handler for transfer requests.
func NewRequestTransferCommandHandler(
	uowFactory TransferUoWFactory,
	ledger services.WeightLedger,
	recorder audittrail.Recorder,
	authority ports.AuthorityProvider,
	notifier ports.Notifier,
	log *slog.Logger,
) RequestTransferCommandHandler {
	return RequestTransferCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		recorder:   recorder,
		authority:  authority,
		notifier:   notifier,
		log:        log.With("component", "request_transfer"),
	}
}

// Handle processes the transfer request command.
func (h *RequestTransferCommandHandler) Handle(ctx context.Context, cmd RequestTransferCommand) error {
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

	sourceOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStage := sourceOrder.Stage()

	sourceRecord, err := uow.ProcessingRepository().GetByOrderAndStage(ctx, cmd.OrderID(), fromStage)
	if err != nil {
		return err
	}

	if err = h.ledger.ValidateTransferRequest(
		sourceRecord.WeightReceived(),
		sourceRecord.WeightToTransfer(),
		cmd.Weight(),
	); err != nil {
		return err
	}

	newTransfer, err := transfer.NewTransfer(
		cmd.TransferID(), cmd.OrderID(),
		fromStage, cmd.ToStage(),
		cmd.Weight(), cmd.ActorID(),
	)
	if err != nil {
		return err
	}

	if err = uow.TransferRepository().Add(ctx, newTransfer); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventTransferRequested, "weight_transfer", newTransfer.ID().String(), &actorID,
		nil, map[string]any{
			"order_id":   cmd.OrderID().String(),
			"from_stage": fromStage.String(),
			"to_stage":   cmd.ToStage().String(),
			"weight":     cmd.Weight().Kilograms(),
		}, "", nil)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyApprovers(ctx, newTransfer)
	return nil
}

// notifyApprovers is best-effort: the transfer is already committed, so
// failures are logged and swallowed.
func (h *RequestTransferCommandHandler) notifyApprovers(ctx context.Context, t *transfer.Transfer) {
	capability := t.ToStage().CapabilityName()

	approvers, err := h.authority.ApproversFor(ctx, capability)
	if err != nil {
		h.log.ErrorContext(ctx, "resolve approvers", "capability", capability, "error", err)
		return
	}

	payload := map[string]any{
		"transfer_id": t.ID().String(),
		"order_id":    t.OrderID().String(),
		"to_stage":    t.ToStage().String(),
		"weight":      t.Weight().Kilograms(),
	}

	for _, approver := range approvers {
		if err := h.notifier.Notify(ctx, approver.ID, "transfer_pending_approval", payload); err != nil {
			h.log.ErrorContext(ctx, "notify approver", "actor", approver.ID.String(), "error", err)
		}
	}
}
