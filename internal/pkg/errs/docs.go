// Package errs defines the error types shared across the application.
//
// Validation failures (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange),
// lookup misses (ObjectNotFound), permission failures (Unauthorized), and
// optimistic-lock conflicts (ConcurrentModification) each get a sentinel
// variable, a struct carrying the details, constructors with and without a
// cause, and an Unwrap method so callers classify failures with errors.Is.
package errs
