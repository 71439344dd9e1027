// Package auditrepo implements audit trail persistence over GORM, mapping
// between the domain model and the audit_log_entries table. The table is
// append-only; nothing in this package updates or deletes rows.
package auditrepo

import (
	"encoding/json"
	"time"

	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database row for one audit entry. The value maps
// are stored as jsonb so per-field changes stay queryable.
type EntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType   string    `gorm:"index"`
	SubjectType string    `gorm:"index:idx_subject"`
	SubjectID   string    `gorm:"index:idx_subject"`

	ActorID *uuid.UUID `gorm:"type:uuid"`

	OldValues []byte `gorm:"type:jsonb"`
	NewValues []byte `gorm:"type:jsonb"`
	Metadata  []byte `gorm:"type:jsonb"`

	Description string
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "audit_log_entries".
func (EntryDTO) TableName() string {
	return "audit_log_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(e *audit.Entry) (EntryDTO, error) {
	oldValues, err := marshalValues(e.OldValues())
	if err != nil {
		return EntryDTO{}, err
	}
	newValues, err := marshalValues(e.NewValues())
	if err != nil {
		return EntryDTO{}, err
	}
	metadata, err := marshalValues(e.Metadata())
	if err != nil {
		return EntryDTO{}, err
	}

	dto := EntryDTO{
		ID:          e.ID().Bytes(),
		EventType:   string(e.EventType()),
		SubjectType: e.SubjectType(),
		SubjectID:   e.SubjectID(),
		OldValues:   oldValues,
		NewValues:   newValues,
		Metadata:    metadata,
		Description: e.Description(),
		CreatedAt:   e.CreatedAt(),
	}

	if actor := e.ActorID(); actor != nil {
		raw := actor.Bytes()
		dto.ActorID = &raw
	}

	return dto, nil
}

// toDomain reconstructs an audit entry from its database row.
func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		actor, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &actor
	}

	oldValues, err := unmarshalValues(dto.OldValues)
	if err != nil {
		return nil, err
	}
	newValues, err := unmarshalValues(dto.NewValues)
	if err != nil {
		return nil, err
	}
	metadata, err := unmarshalValues(dto.Metadata)
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(
		id,
		audit.EventType(dto.EventType),
		dto.SubjectType, dto.SubjectID,
		actorID,
		oldValues, newValues,
		dto.Description,
		metadata,
		dto.CreatedAt,
	)
}

func marshalValues(values map[string]any) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
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
