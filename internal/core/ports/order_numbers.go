package ports

import "context"

// OrderNumberGenerator issues human-readable order numbers, sequential per
// calendar day, e.g. "ORD-20260901-0003".
type OrderNumberGenerator interface {
	Next(ctx context.Context) (string, error)
}
