package audit

// EventType classifies an audit entry. Lifecycle events use the fixed values
// below; domain operations record custom events under their own names.
type EventType string

const (
	// EventCreated records the creation of an entity.
	EventCreated EventType = "created"

	// EventUpdated records a field-level change to an entity.
	EventUpdated EventType = "updated"

	// EventDeleted records a hard delete.
	EventDeleted EventType = "deleted"

	// EventSoftDeleted records an admin soft delete. Distinct from
	// EventDeleted so restorable removals are distinguishable in the trail.
	EventSoftDeleted EventType = "soft_deleted"

	// EventRestored records the restoration of a soft-deleted entity.
	EventRestored EventType = "restored"
)

// Custom event names emitted by the workflow operations. Kept here so the
// trail uses one spelling everywhere.
const (
	EventTransferRequested        EventType = "transfer_requested"
	EventTransferApproved         EventType = "transfer_approved"
	EventTransferRejected         EventType = "transfer_rejected"
	EventWorkflowTransition       EventType = "workflow_transition"
	EventStageSkipped             EventType = "stage_skipped"
	EventOrderCancelled           EventType = "order_cancelled"
	EventSortingApproved          EventType = "sorting_approved"
	EventSortingTransferCompleted EventType = "sorting_transfer_completed"
	EventHandoverRequested        EventType = "handover_requested"
	EventHandoverConfirmed        EventType = "handover_confirmed"
	EventPricingCalculated        EventType = "pricing_calculated"
	EventUnauthorizedAttempt      EventType = "unauthorized_attempt"
)

// String returns the event type's wire name.
func (e EventType) String() string {
	return string(e)
}
