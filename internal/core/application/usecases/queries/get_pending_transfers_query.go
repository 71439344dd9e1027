package queries

import (
	"errors"
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/guard"
)

var ErrGetPendingTransfersQueryIsNotConstructed = errors.New(
	"GetPendingTransfersQuery must be created via NewGetPendingTransfersQuery constructor",
)

// GetPendingTransfersQuery retrieves the unresolved weight transfers of one
// order, optionally narrowed to a single receiving stage.
type GetPendingTransfersQuery struct {
	orderID kernel.UUID
	toStage order.Stage

	guard guard.ConstructorGuard
}

// NewGetPendingTransfersQuery creates a query for an order's pending
// transfers. Pass order.StageUnknown as toStage to list all receiving stages.
func NewGetPendingTransfersQuery(orderID kernel.UUID, toStage order.Stage) (GetPendingTransfersQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPendingTransfersQuery{}, err
	}
	if toStage != order.StageUnknown {
		if err := toStage.Validate(); err != nil {
			return GetPendingTransfersQuery{}, err
		}
	}

	return GetPendingTransfersQuery{
		orderID: orderID,
		toStage: toStage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTransfersQueryIsNotConstructed)
}

// OrderID returns the order being inspected.
func (q GetPendingTransfersQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ToStage returns the receiving-stage filter, StageUnknown for none.
func (q GetPendingTransfersQuery) ToStage() order.Stage {
	return q.toStage
}

// GetPendingTransfersQueryResponse describes one pending transfer.
type GetPendingTransfersQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	FromStage   string
	ToStage     string
	Weight      float64
	RequestedBy kernel.UUID
	RequestedAt time.Time
}
