package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/services"
)

// CalculateOrderPricingCommandHandler applies new pricing inputs to an order
// and recomputes its total. The estimate is always refreshed; once the order
// is at the Invoicing stage the final price is committed as well.
type CalculateOrderPricingCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.PricingEngine
	recorder   audittrail.Recorder
}

// NewCalculateOrderPricingCommandHandler creates a handler for order pricing.
func NewCalculateOrderPricingCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.PricingEngine,
	recorder audittrail.Recorder,
) CalculateOrderPricingCommandHandler {
	return CalculateOrderPricingCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		recorder:   recorder,
	}
}

// Handle processes the pricing calculation command.
func (h *CalculateOrderPricingCommandHandler) Handle(ctx context.Context, cmd CalculateOrderPricingCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.SetPricingInputs(cmd.PricePerTon(), cmd.CuttingFees(), cmd.Discount(), o.RequiredWeight()); err != nil {
		return err
	}

	breakdown, err := h.engine.CalculateOrderPricing(o)
	if err != nil {
		return err
	}

	o.ApplyEstimatedPrice(breakdown.Total)

	if o.Stage() == order.Invoicing {
		if err = o.ApplyFinalPrice(breakdown.Total); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	actorID := cmd.ActorID()
	h.recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventPricingCalculated, "order", o.ID().String(), &actorID,
		nil, map[string]any{
			"material_cost": breakdown.MaterialCost,
			"cutting_fees":  breakdown.CuttingFees,
			"discount":      breakdown.Discount,
			"total":         breakdown.Total,
		}, "", nil)

	return uow.Commit(ctx)
}
