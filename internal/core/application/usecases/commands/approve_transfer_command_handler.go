package commands

import (
	"context"
	"errors"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/core/domain/services"
	"millflow/internal/pkg/errs"
)

// ApproveTransferCommandHandler resolves a pending transfer to approved and
// moves the weight: the source record books the outgoing amount, the
// destination record books the incoming amount. All three writes plus the
// audit entry commit in one transaction.
//
// If the destination stage has no processing record yet (the order has not
// reached it), the record is created here, in pending status.
type ApproveTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	gate       services.ApprovalGate
	recorder   audittrail.Recorder
}

// NewApproveTransferCommandHandler creates a handler for transfer approval.
func NewApproveTransferCommandHandler(
	uowFactory TransferUoWFactory,
	gate services.ApprovalGate,
	recorder audittrail.Recorder,
) ApproveTransferCommandHandler {
	return ApproveTransferCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		recorder:   recorder,
	}
}

// Handle processes the transfer approval command.
func (h *ApproveTransferCommandHandler) Handle(ctx context.Context, cmd ApproveTransferCommand) error {
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
	if err = h.gate.Approve(ctx, actorID, t); err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			// The rejection of the attempt itself is worth a trail entry.
			recordDeniedAttempt(ctx, h.recorder, uow, "weight_transfer", t.ID().String(),
				actorID, t.ToStage().CapabilityName(), "transfer approval denied")
		}
		return err
	}

	sourceRecord, err := uow.ProcessingRepository().GetByOrderAndStage(ctx, t.OrderID(), t.FromStage())
	if err != nil {
		return err
	}

	if err = sourceRecord.ApplyOutgoingTransfer(t.Weight(), t.ToStage(), actorID); err != nil {
		return err
	}

	if err = h.receiveAtDestination(ctx, uow, t); err != nil {
		return err
	}

	if err = uow.ProcessingRepository().Update(ctx, sourceRecord); err != nil {
		return err
	}

	if err = uow.TransferRepository().Update(ctx, t); err != nil {
		return err
	}

	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventTransferApproved, "weight_transfer", t.ID().String(), &actorID,
		nil, map[string]any{
			"order_id":   t.OrderID().String(),
			"from_stage": t.FromStage().String(),
			"to_stage":   t.ToStage().String(),
			"weight":     t.Weight().Kilograms(),
		}, "", nil)

	return uow.Commit(ctx)
}

// receiveAtDestination books the incoming weight on the destination stage's
// record, creating the record if the order has not reached that stage yet.
func (h *ApproveTransferCommandHandler) receiveAtDestination(
	ctx context.Context,
	uow TransferUoW,
	t *transfer.Transfer,
) error {
	repo := uow.ProcessingRepository()

	destRecord, err := repo.GetByOrderAndStage(ctx, t.OrderID(), t.ToStage())
	switch {
	case err == nil:
		if err = destRecord.ReceiveWeight(t.Weight()); err != nil {
			return err
		}
		return repo.Update(ctx, destRecord)

	case errors.Is(err, errs.ErrObjectNotFound):
		destRecord, err = processing.NewRecord(kernel.NewUUID(), t.OrderID(), t.ToStage(), false)
		if err != nil {
			return err
		}
		if err = destRecord.ReceiveWeight(t.Weight()); err != nil {
			return err
		}
		return repo.Add(ctx, destRecord)

	default:
		return err
	}
}
