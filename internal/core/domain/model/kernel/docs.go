// Package kernel provides the core domain primitives shared by every aggregate
// in the material workflow system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Weight: a non-negative material quantity in kilograms with tolerance-aware
//     comparison, used by the weight ledger and the sorting conservation check
//
// These primitives are immutable and thread-safe. They enforce their invariants
// at construction time so that aggregates composed from them never hold invalid
// identifier or quantity values.
package kernel
