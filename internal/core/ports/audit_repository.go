package ports

import (
	"context"

	"millflow/internal/core/domain/model/audit"
)

// AuditLogRepository defines the persistence contract for the append-only
// audit trail. There is deliberately no update or delete: entries are
// immutable once appended.
type AuditLogRepository interface {
	// Append persists a new audit entry.
	Append(ctx context.Context, entry *audit.Entry) error

	// GetForSubject retrieves the entries describing one entity, oldest first.
	GetForSubject(ctx context.Context, subjectType, subjectID string) ([]*audit.Entry, error)
}
