package queries

import (
	"context"
	"database/sql"
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProcessingRecordQueryHandler reads the stage-local state of one order.
type GetProcessingRecordQueryHandler struct {
	db *gorm.DB
}

// NewGetProcessingRecordQueryHandler creates a handler for processing record
// queries.
func NewGetProcessingRecordQueryHandler(db *gorm.DB) GetProcessingRecordQueryHandler {
	return GetProcessingRecordQueryHandler{db: db}
}

// Handle executes the query. Fails with errs.ObjectNotFoundError when the
// order has no record at the stage.
func (h GetProcessingRecordQueryHandler) Handle(
	ctx context.Context,
	query GetProcessingRecordQuery,
) (GetProcessingRecordQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProcessingRecordQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			weight_received,
			weight_to_transfer,
			mandatory_handover,
			handover_status,
			sorting_approved,
			roll1_weight, roll1_width, roll1_location,
			roll2_weight, roll2_width, roll2_location,
			waste_weight,
			sorting_transfer_completed
		FROM order_processings
		WHERE order_id = ? AND stage = ?
	`, query.OrderID().String(), int(query.Stage())).Row()

	var resp GetProcessingRecordQueryResponse
	var id uuid.UUID
	var status, handoverStatus int
	var roll1Weight, roll1Width, roll2Weight, roll2Width sql.NullFloat64
	var roll1Location, roll2Location sql.NullString

	err := row.Scan(
		&id, &status,
		&resp.WeightReceived, &resp.WeightToTransfer,
		&resp.MandatoryHandover, &handoverStatus,
		&resp.SortingApproved,
		&roll1Weight, &roll1Width, &roll1Location,
		&roll2Weight, &roll2Width, &roll2Location,
		&resp.WasteWeight,
		&resp.SortingTransferCompleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProcessingRecordQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"processing record", query.OrderID().String(), err,
		)
	}
	if err != nil {
		return GetProcessingRecordQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetProcessingRecordQueryResponse{}, err
	}
	resp.Stage = query.Stage().String()
	resp.Status = processing.Status(status).String()
	resp.HandoverStatus = processing.HandoverStatus(handoverStatus).String()
	resp.WeightBalance = resp.WeightReceived - resp.WeightToTransfer

	if roll1Weight.Valid {
		resp.Roll1 = &RollView{Weight: roll1Weight.Float64, Width: roll1Width.Float64, Location: roll1Location.String}
	}
	if roll2Weight.Valid {
		resp.Roll2 = &RollView{Weight: roll2Weight.Float64, Width: roll2Width.Float64, Location: roll2Location.String}
	}

	return resp, nil
}
