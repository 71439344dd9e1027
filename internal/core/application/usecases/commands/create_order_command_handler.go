package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Assigns the order number, creates the order at the Creation stage together
// with its first processing record, and audits the creation.
type CreateOrderCommandHandler struct {
	uowFactory OrderProcessingUoWFactory
	numbers    ports.OrderNumberGenerator
	recorder   audittrail.Recorder
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory OrderProcessingUoWFactory,
	numbers ports.OrderNumberGenerator,
	recorder audittrail.Recorder,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
		recorder:   recorder,
	}
}

// Handle processes the order creation command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderNumber, err := h.numbers.Next(ctx)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newOrder, err := order.NewOrder(cmd.OrderID(), orderNumber, cmd.OrderType(), cmd.RequiredWeight())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	// The Creation-stage record exists from day one; records for later stages
	// appear lazily as material is transferred into them.
	record, err := processing.NewRecord(kernel.NewUUID(), newOrder.ID(), order.Creation, false)
	if err != nil {
		return err
	}

	if err = uow.ProcessingRepository().Add(ctx, record); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Created(ctx, uow.AuditLogRepository(), "order", newOrder.ID().String(), &actorID, map[string]any{
		"order_number":    newOrder.OrderNumber(),
		"order_type":      newOrder.OrderType().String(),
		"stage":           newOrder.Stage().String(),
		"required_weight": newOrder.RequiredWeight().Kilograms(),
	})

	return uow.Commit(ctx)
}
