// Package services provides domain services for business logic that spans
// multiple aggregates or depends on external capability checks.
//
// The package includes:
//   - the weight ledger: pure balance and transfer-request arithmetic over
//     processing-record weight fields
//   - the pricing engine: pure validation and total calculation from an
//     order's pricing inputs
//   - the approval gate: the capability and no-self-approval predicate for
//     resolving weight transfers, plus the approve/reject orchestration
package services
