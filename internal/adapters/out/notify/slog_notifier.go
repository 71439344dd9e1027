// Package notify provides the log-backed Notifier used until a real
// messaging channel (e-mail, chat webhook) is wired in. Notifications are
// best-effort by contract, so a logging sink is a legitimate production
// fallback, not just a stub.
package notify

import (
	"context"
	"log/slog"

	"millflow/internal/core/domain/model/kernel"
)

// SlogNotifier writes each notification as a structured log record.
type SlogNotifier struct {
	log *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	return &SlogNotifier{log: log.With("component", "notifier")}
}

// Notify logs the notification. Never returns an error.
func (n *SlogNotifier) Notify(ctx context.Context, actorID kernel.UUID, eventType string, payload map[string]any) error {
	n.log.InfoContext(ctx, "notification",
		"actor_id", actorID.String(),
		"event_type", eventType,
		"payload", payload,
	)
	return nil
}
