package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"millflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads an entity's append-only history.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail queries.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle executes the query, oldest entry first.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_type,
			actor_id,
			old_values,
			new_values,
			description,
			metadata,
			created_at
		FROM audit_log_entries
		WHERE subject_type = ? AND subject_id = ?
		ORDER BY created_at
	`, query.SubjectType(), query.SubjectID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetAuditTrailQueryResponse, 0)
	for rows.Next() {
		var resp GetAuditTrailQueryResponse
		var id uuid.UUID
		var actorID uuid.NullUUID
		var oldValues, newValues, metadata []byte
		var description sql.NullString

		if err = rows.Scan(
			&id, &resp.EventType, &actorID,
			&oldValues, &newValues, &description, &metadata,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if actorID.Valid {
			actor, actorErr := kernel.UUIDFromBytes(actorID.UUID[:])
			if actorErr != nil {
				return nil, actorErr
			}
			resp.ActorID = &actor
		}
		resp.Description = description.String

		if resp.OldValues, err = unmarshalValues(oldValues); err != nil {
			return nil, err
		}
		if resp.NewValues, err = unmarshalValues(newValues); err != nil {
			return nil, err
		}
		if resp.Metadata, err = unmarshalValues(metadata); err != nil {
			return nil, err
		}

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func unmarshalValues(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
