package ports

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
)

// ProcessingRepository defines the persistence contract for per-(order, stage)
// processing records.
type ProcessingRepository interface {
	// Add persists a new processing record.
	Add(ctx context.Context, aggregate *processing.Record) error

	// Update persists changes to an existing record. Implementations check the
	// aggregate's version against the stored row and fail with
	// errs.ErrConcurrentModification on mismatch.
	Update(ctx context.Context, aggregate *processing.Record) error

	// Get retrieves a record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*processing.Record, error)

	// GetByOrderAndStage retrieves the record for one order at one stage.
	// Fails with errs.ObjectNotFoundError when the order has not reached the
	// stage yet; callers creating records lazily test for that error.
	GetByOrderAndStage(ctx context.Context, orderID kernel.UUID, stage order.Stage) (*processing.Record, error)

	// GetAllForOrder retrieves every processing record of one order, in
	// stage order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*processing.Record, error)
}
