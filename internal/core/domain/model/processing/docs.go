// Package processing implements the per-(order, stage) processing record: the
// aggregate that accounts for material weight entering and leaving a stage,
// carries the mandatory-handover gate consulted on stage advance, and holds
// the sorting stage's two-roll split and its release to a destination.
//
// The weight invariant is structural: the transferred total can only grow
// through ApplyOutgoingTransfer, which refuses amounts exceeding the current
// balance, so received - transferred never goes negative.
package processing
