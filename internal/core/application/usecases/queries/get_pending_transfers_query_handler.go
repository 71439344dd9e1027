// Package queries contains read-only operations in the CQRS architecture.
// Handlers read the store directly with raw SQL and return flat response
// structs; they never load aggregates or mutate state.
package queries

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingTransfersQueryHandler lists unresolved transfers awaiting an
// approval decision.
type GetPendingTransfersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingTransfersQueryHandler creates a handler for pending transfer
// queries.
func NewGetPendingTransfersQueryHandler(db *gorm.DB) GetPendingTransfersQueryHandler {
	return GetPendingTransfersQueryHandler{db: db}
}

// Handle executes the query, oldest request first.
func (h GetPendingTransfersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingTransfersQuery,
) ([]GetPendingTransfersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			from_stage,
			to_stage,
			weight,
			requested_by,
			requested_at
		FROM weight_transfers
		WHERE order_id = ? AND status = ?
	`
	args := []any{query.OrderID().String(), int(transfer.Pending)}

	if query.ToStage() != order.StageUnknown {
		sql += " AND to_stage = ?"
		args = append(args, int(query.ToStage()))
	}
	sql += " ORDER BY requested_at"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make([]GetPendingTransfersQueryResponse, 0)
	for rows.Next() {
		var resp GetPendingTransfersQueryResponse
		var id, orderID, requestedBy uuid.UUID
		var fromStage, toStage int

		if err = rows.Scan(&id, &orderID, &fromStage, &toStage, &resp.Weight, &requestedBy, &resp.RequestedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.RequestedBy, err = kernel.UUIDFromBytes(requestedBy[:]); err != nil {
			return nil, err
		}
		resp.FromStage = order.Stage(fromStage).String()
		resp.ToStage = order.Stage(toStage).String()

		transfers = append(transfers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transfers, nil
}
