package ports

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Implementations check the
	// aggregate's version against the stored row and fail with
	// errs.ErrConcurrentModification on mismatch.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStage retrieves every order currently at the given stage.
	// Backs the "query by stage" operation consumed by the presentation layer.
	GetAllInStage(ctx context.Context, stage order.Stage) ([]*order.Order, error)

	// SoftDelete marks an order as deleted without removing the row.
	// Restorable; the caller audits the removal.
	SoftDelete(ctx context.Context, id kernel.UUID) error

	// Restore reverses a soft delete.
	Restore(ctx context.Context, id kernel.UUID) error
}
