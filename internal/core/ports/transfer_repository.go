package ports

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/transfer"
)

// TransferRepository defines the persistence contract for weight transfers.
type TransferRepository interface {
	// Add persists a new transfer request.
	Add(ctx context.Context, aggregate *transfer.Transfer) error

	// Update persists changes to an existing transfer. Implementations check
	// the aggregate's version against the stored row and fail with
	// errs.ErrConcurrentModification on mismatch, so two concurrent approvals
	// serialize: the first wins, the second reloads a resolved transfer.
	Update(ctx context.Context, aggregate *transfer.Transfer) error

	// Get retrieves a transfer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error)

	// GetPendingForOrderAndStage retrieves pending transfers targeting the
	// given stage of the given order.
	GetPendingForOrderAndStage(ctx context.Context, orderID kernel.UUID, toStage order.Stage) ([]*transfer.Transfer, error)

	// GetAllPending retrieves every pending transfer in the system.
	// Used by the reminder job.
	GetAllPending(ctx context.Context) ([]*transfer.Transfer, error)
}
