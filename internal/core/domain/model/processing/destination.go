package processing

import (
	"fmt"

	"millflow/internal/pkg/errs"
)

// Destination identifies where sorted material goes once the sorting stage
// releases it.
type Destination int

const (
	// DestinationUnknown represents an invalid or undefined destination.
	DestinationUnknown Destination = iota

	// CuttingWarehouse moves the output to the in-house cutting warehouse.
	CuttingWarehouse

	// DirectDelivery ships the output straight to the customer.
	DirectDelivery

	// OtherWarehouse moves the output to an explicitly chosen warehouse;
	// requires a destination warehouse identifier.
	OtherWarehouse
)

func getDestinationStrings() map[Destination]string {
	return map[Destination]string{
		DestinationUnknown: "unknown",
		CuttingWarehouse:   "cutting_warehouse",
		DirectDelivery:     "direct_delivery",
		OtherWarehouse:     "other_warehouse",
	}
}

// DestinationFromString parses the wire representation used by the HTTP layer.
func DestinationFromString(s string) (Destination, error) {
	for d, str := range getDestinationStrings() {
		if str == s && d != DestinationUnknown {
			return d, nil
		}
	}
	return DestinationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"destination",
		fmt.Errorf("%q is not a valid sorting destination", s),
	)
}

// Validate checks that the Destination is one of the defined values.
func (d Destination) Validate() error {
	if d < CuttingWarehouse || d > OtherWarehouse {
		return errs.NewValueIsInvalidErrorWithCause("destination", fmt.Errorf("%d is not a valid destination", d))
	}
	return nil
}

// String returns the snake_case wire name of the destination.
func (d Destination) String() string {
	if str, ok := getDestinationStrings()[d]; ok {
		return str
	}
	return "unknown"
}
