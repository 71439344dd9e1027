package queries

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/guard"
)

var ErrGetProcessingRecordQueryIsNotConstructed = errors.New(
	"GetProcessingRecordQuery must be created via NewGetProcessingRecordQuery constructor",
)

// GetProcessingRecordQuery retrieves the stage-local state of one order at
// one stage: weights, handover progress and (for Sorting) the roll split.
type GetProcessingRecordQuery struct {
	orderID kernel.UUID
	stage   order.Stage

	guard guard.ConstructorGuard
}

// NewGetProcessingRecordQuery creates a query for one processing record.
func NewGetProcessingRecordQuery(orderID kernel.UUID, stage order.Stage) (GetProcessingRecordQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetProcessingRecordQuery{}, err
	}
	if err := stage.Validate(); err != nil {
		return GetProcessingRecordQuery{}, err
	}

	return GetProcessingRecordQuery{
		orderID: orderID,
		stage:   stage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProcessingRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetProcessingRecordQueryIsNotConstructed)
}

// OrderID returns the order being inspected.
func (q GetProcessingRecordQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Stage returns the stage being inspected.
func (q GetProcessingRecordQuery) Stage() order.Stage {
	return q.stage
}

// RollView describes one output roll of the sorting split.
type RollView struct {
	Weight   float64
	Width    float64
	Location string
}

// GetProcessingRecordQueryResponse describes a processing record.
type GetProcessingRecordQueryResponse struct {
	ID     kernel.UUID
	Stage  string
	Status string

	WeightReceived   float64
	WeightToTransfer float64
	WeightBalance    float64

	MandatoryHandover bool
	HandoverStatus    string

	SortingApproved          bool
	Roll1                    *RollView
	Roll2                    *RollView
	WasteWeight              float64
	SortingTransferCompleted bool
}
