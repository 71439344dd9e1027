package commands

import (
	"context"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/ports"
)

// auditCommitter is the slice of a unit of work the denied-attempt entry
// needs: the transaction-bound audit repository and the commit.
type auditCommitter interface {
	AuditLogRepository() ports.AuditLogRepository
	Commit(ctx context.Context) error
}

// recordDeniedAttempt writes the attempted-action trail entry for a refused
// capability check and commits the audit-only transaction. Business state is
// untouched; the caller still returns the unauthorized error.
func recordDeniedAttempt(
	ctx context.Context,
	recorder audittrail.Recorder,
	uow auditCommitter,
	subjectType, subjectID string,
	actorID kernel.UUID,
	capability, description string,
) {
	recorder.Custom(ctx, uow.AuditLogRepository(),
		audit.EventUnauthorizedAttempt, subjectType, subjectID, &actorID,
		nil, nil, description, map[string]any{"capability": capability})
	_ = uow.Commit(ctx)
}
