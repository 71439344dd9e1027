package ports

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
)

// Notifier delivers workflow notifications to actors. Delivery failures must
// never fail the business operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, actorID kernel.UUID, eventType string, payload map[string]any) error
}
