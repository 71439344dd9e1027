// Package audittrail records who changed what, when, on the append-only
// audit log. Recording is best-effort: a failed append is logged and the
// business operation continues.
package audittrail

import (
	"context"
	"log/slog"
	"reflect"

	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/ports"
)

// excludedFields are bookkeeping columns that would flood every diff with
// noise. They never appear in old/new value maps.
var excludedFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"deleted_at": {},
	"version":    {},
}

// Recorder writes audit entries through a transaction-bound repository.
// Handlers pass the repository from their unit of work so the entry commits
// together with the business change.
//
// Log-and-continue fully shields entry construction failures only. A failed
// INSERT inside an open postgres transaction aborts that transaction, so the
// swallowed repository error resurfaces when the handler commits.
type Recorder struct {
	log *slog.Logger
}

// NewRecorder creates a Recorder logging append failures to the given logger.
func NewRecorder(log *slog.Logger) Recorder {
	return Recorder{
		log: log.With("component", "audittrail"),
	}
}

// Created records an entity creation with its initial values.
func (r Recorder) Created(
	ctx context.Context,
	repo ports.AuditLogRepository,
	subjectType, subjectID string,
	actorID *kernel.UUID,
	values map[string]any,
) {
	r.append(ctx, repo, audit.EventCreated, subjectType, subjectID, actorID, nil, filterFields(values), "", nil)
}

// Updated records a field-level change. Unchanged and excluded fields are
// dropped from both sides; if nothing remains, no entry is written.
func (r Recorder) Updated(
	ctx context.Context,
	repo ports.AuditLogRepository,
	subjectType, subjectID string,
	actorID *kernel.UUID,
	oldValues, newValues map[string]any,
) {
	changedOld, changedNew := diffFields(oldValues, newValues)
	if len(changedNew) == 0 {
		return
	}

	r.append(ctx, repo, audit.EventUpdated, subjectType, subjectID, actorID, changedOld, changedNew, "", nil)
}

// Custom records a domain event under its own name, with an optional
// human-readable description and metadata.
func (r Recorder) Custom(
	ctx context.Context,
	repo ports.AuditLogRepository,
	eventType audit.EventType,
	subjectType, subjectID string,
	actorID *kernel.UUID,
	oldValues, newValues map[string]any,
	description string,
	metadata map[string]any,
) {
	r.append(ctx, repo, eventType, subjectType, subjectID, actorID,
		filterFields(oldValues), filterFields(newValues), description, metadata)
}

func (r Recorder) append(
	ctx context.Context,
	repo ports.AuditLogRepository,
	eventType audit.EventType,
	subjectType, subjectID string,
	actorID *kernel.UUID,
	oldValues, newValues map[string]any,
	description string,
	metadata map[string]any,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(), eventType, subjectType, subjectID, actorID,
		oldValues, newValues, description, metadata,
	)
	if err != nil {
		r.log.ErrorContext(ctx, "build audit entry",
			"event", eventType.String(), "subject_type", subjectType, "subject_id", subjectID, "error", err)
		return
	}

	if err := repo.Append(ctx, entry); err != nil {
		r.log.ErrorContext(ctx, "append audit entry",
			"event", eventType.String(), "subject_type", subjectType, "subject_id", subjectID, "error", err)
	}
}

func filterFields(values map[string]any) map[string]any {
	if len(values) == 0 {
		return nil
	}

	out := make(map[string]any, len(values))
	for k, v := range values {
		if _, skip := excludedFields[k]; skip {
			continue
		}
		out[k] = v
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func diffFields(oldValues, newValues map[string]any) (map[string]any, map[string]any) {
	changedOld := make(map[string]any)
	changedNew := make(map[string]any)

	for k, newV := range newValues {
		if _, skip := excludedFields[k]; skip {
			continue
		}
		if oldV, ok := oldValues[k]; !ok || !reflect.DeepEqual(oldV, newV) {
			if ok {
				changedOld[k] = oldV
			}
			changedNew[k] = newV
		}
	}

	if len(changedNew) == 0 {
		return nil, nil
	}
	return changedOld, changedNew
}
