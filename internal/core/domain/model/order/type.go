package order

import (
	"fmt"

	"millflow/internal/pkg/errs"
)

// Type distinguishes the direction of material flow for an order.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// Inbound orders bring raw material into the mill.
	Inbound

	// Outbound orders ship processed material to a customer.
	Outbound
)

// TypeFromString parses an order type name as produced by String.
func TypeFromString(s string) (Type, error) {
	switch s {
	case "Inbound":
		return Inbound, nil
	case "Outbound":
		return Outbound, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"order type", fmt.Errorf("%q is not a valid order type", s))
	}
}

// Validate checks that the Type is Inbound or Outbound.
func (t Type) Validate() error {
	if t != Inbound && t != Outbound {
		return errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns "Inbound", "Outbound", or "Unknown".
func (t Type) String() string {
	switch t {
	case Inbound:
		return "Inbound"
	case Outbound:
		return "Outbound"
	default:
		return "Unknown"
	}
}
