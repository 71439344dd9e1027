package queries

import (
	"errors"
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/errs"
	"millflow/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery retrieves the audit history of one entity, oldest first.
type GetAuditTrailQuery struct {
	subjectType string
	subjectID   string

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates a query for an entity's audit trail.
func NewGetAuditTrailQuery(subjectType, subjectID string) (GetAuditTrailQuery, error) {
	if subjectType == "" {
		return GetAuditTrailQuery{}, errs.NewValueIsRequiredError("subject type")
	}
	if subjectID == "" {
		return GetAuditTrailQuery{}, errs.NewValueIsRequiredError("subject id")
	}

	return GetAuditTrailQuery{
		subjectType: subjectType,
		subjectID:   subjectID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// SubjectType returns the entity kind, e.g. "order".
func (q GetAuditTrailQuery) SubjectType() string {
	return q.subjectType
}

// SubjectID returns the entity identifier.
func (q GetAuditTrailQuery) SubjectID() string {
	return q.subjectID
}

// GetAuditTrailQueryResponse describes one audit entry.
type GetAuditTrailQueryResponse struct {
	ID          kernel.UUID
	EventType   string
	ActorID     *kernel.UUID
	OldValues   map[string]any
	NewValues   map[string]any
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}
