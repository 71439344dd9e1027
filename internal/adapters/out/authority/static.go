// Package authority provides a configuration-driven AuthorityProvider. Each
// actor is declared once with the capabilities they hold; the HTTP layer
// attaches the authenticated actor to the request context and handlers
// resolve it back through CurrentActor.
package authority

import (
	"context"
	"errors"
	"slices"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/ports"
)

// ErrNoActorInContext is returned when CurrentActor is called on a context
// that never passed through WithActor.
var ErrNoActorInContext = errors.New("no actor attached to context")

type actorContextKey struct{}

// WithActor attaches the authenticated actor to the context.
func WithActor(ctx context.Context, actor ports.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorGrant declares one actor and the capabilities they hold. The single
// capability "*" grants everything.
type ActorGrant struct {
	Actor        ports.Actor
	Capabilities []string
}

// StaticAuthorityProvider answers capability questions from an in-memory
// grant table built at startup.
type StaticAuthorityProvider struct {
	grants map[kernel.UUID]ActorGrant
}

// NewStaticAuthorityProvider creates a provider from the given grants.
func NewStaticAuthorityProvider(grants []ActorGrant) *StaticAuthorityProvider {
	indexed := make(map[kernel.UUID]ActorGrant, len(grants))
	for _, grant := range grants {
		indexed[grant.Actor.ID] = grant
	}
	return &StaticAuthorityProvider{grants: indexed}
}

// CurrentActor resolves the actor attached to the request context.
func (p *StaticAuthorityProvider) CurrentActor(ctx context.Context) (ports.Actor, error) {
	actor, ok := ctx.Value(actorContextKey{}).(ports.Actor)
	if !ok {
		return ports.Actor{}, ErrNoActorInContext
	}
	return actor, nil
}

// HasCapability reports whether the actor holds the named capability.
// Unknown actors hold nothing.
func (p *StaticAuthorityProvider) HasCapability(
	_ context.Context,
	actorID kernel.UUID,
	capability string,
) (bool, error) {
	grant, ok := p.grants[actorID]
	if !ok {
		return false, nil
	}
	return slices.Contains(grant.Capabilities, "*") ||
		slices.Contains(grant.Capabilities, capability), nil
}

// ApproversFor lists the actors holding the named capability.
func (p *StaticAuthorityProvider) ApproversFor(_ context.Context, capability string) ([]ports.Actor, error) {
	approvers := make([]ports.Actor, 0)
	for _, grant := range p.grants {
		if slices.Contains(grant.Capabilities, "*") ||
			slices.Contains(grant.Capabilities, capability) {
			approvers = append(approvers, grant.Actor)
		}
	}
	return approvers, nil
}
