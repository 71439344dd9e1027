package ports

import (
	"context"

	"millflow/internal/core/domain/model/kernel"
)

// Actor identifies a user performing workflow operations.
type Actor struct {
	ID   kernel.UUID
	Name string
}

// AuthorityProvider answers capability questions about actors. Capabilities
// are dot-separated strings such as "stage.sorting" or "orders.cancel".
type AuthorityProvider interface {
	// CurrentActor resolves the actor attached to the request context.
	CurrentActor(ctx context.Context) (Actor, error)

	// HasCapability reports whether the actor holds the named capability.
	HasCapability(ctx context.Context, actorID kernel.UUID, capability string) (bool, error)

	// ApproversFor lists the actors holding the named capability. Used to
	// notify potential approvers when a transfer is requested.
	ApproversFor(ctx context.Context, capability string) ([]Actor, error)
}
