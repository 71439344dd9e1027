// Package audit implements the append-only audit log entry. Entries are
// immutable once created: the store only ever appends, never updates or
// deletes, so the trail is a faithful history of every state change.
package audit

import (
	"errors"
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry or RestoreEntry factory functions.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one append-only audit record: what happened (event type), to what
// (subject type and id), by whom (actor), and the before/after value sets for
// field-level changes. Free-form description and metadata carry operation
// specifics such as the stages of a workflow transition.
type Entry struct {
	id          kernel.UUID
	eventType   EventType
	subjectType string
	subjectID   string
	actorID     *kernel.UUID
	oldValues   map[string]any
	newValues   map[string]any
	description string
	metadata    map[string]any
	createdAt   time.Time

	isConstructed bool
}

// NewEntry creates an audit entry stamped with the current time.
// actorID may be nil for system-initiated changes.
func NewEntry(
	id kernel.UUID,
	eventType EventType,
	subjectType, subjectID string,
	actorID *kernel.UUID,
	oldValues, newValues map[string]any,
	description string,
	metadata map[string]any,
) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("event type")
	}
	if subjectType == "" {
		return nil, errs.NewValueIsRequiredError("subject type")
	}
	if subjectID == "" {
		return nil, errs.NewValueIsRequiredError("subject id")
	}

	return &Entry{
		id:            id,
		eventType:     eventType,
		subjectType:   subjectType,
		subjectID:     subjectID,
		actorID:       actorID,
		oldValues:     oldValues,
		newValues:     newValues,
		description:   description,
		metadata:      metadata,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an entry from persistence with its original
// creation time.
func RestoreEntry(
	id kernel.UUID,
	eventType EventType,
	subjectType, subjectID string,
	actorID *kernel.UUID,
	oldValues, newValues map[string]any,
	description string,
	metadata map[string]any,
	createdAt time.Time,
) (*Entry, error) {
	e, err := NewEntry(id, eventType, subjectType, subjectID, actorID, oldValues, newValues, description, metadata)
	if err != nil {
		return nil, err
	}
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the Entry was constructed through a factory function.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// EventType returns what happened.
func (e *Entry) EventType() EventType {
	return e.eventType
}

// SubjectType returns the kind of entity the entry describes.
func (e *Entry) SubjectType() string {
	return e.subjectType
}

// SubjectID returns the identifier of the entity the entry describes.
func (e *Entry) SubjectID() string {
	return e.subjectID
}

// ActorID returns who performed the change, nil for system changes.
func (e *Entry) ActorID() *kernel.UUID {
	return e.actorID
}

// OldValues returns the field values before the change.
func (e *Entry) OldValues() map[string]any {
	return e.oldValues
}

// NewValues returns the field values after the change.
func (e *Entry) NewValues() map[string]any {
	return e.newValues
}

// Description returns the free-form operation summary.
func (e *Entry) Description() string {
	return e.description
}

// Metadata returns operation-specific context values.
func (e *Entry) Metadata() map[string]any {
	return e.metadata
}

// CreatedAt returns when the entry was appended.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
