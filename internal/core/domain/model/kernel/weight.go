package kernel

import (
	"fmt"
	"math"

	"millflow/internal/pkg/errs"
)

// WeightTolerance is the maximum difference, in weight units, at which two
// weights are still considered equal. Physical scales at the stations report
// two decimal places, so anything below a hundredth is measurement noise.
const WeightTolerance = 0.01

// Weight is a value object representing a non-negative quantity of material,
// expressed in kilograms. It is used for everything the ledger accounts for:
// received weight, transferred weight, balances, roll weights and waste.
//
// The zero value represents zero kilograms and is valid. Negative and
// non-finite quantities cannot be constructed.
//
// Example:
//
//	received, err := kernel.NewWeight(1250.5)
//	if err != nil {
//	    return err
//	}
//	balance, err := received.Sub(transferred)
type Weight struct {
	kg float64
}

// NewWeight creates a Weight from a kilogram quantity.
// Fails for negative, NaN, or infinite values.
func NewWeight(kg float64) (Weight, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a finite number", kg))
	}
	if kg < 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is negative", kg))
	}
	return Weight{kg: kg}, nil
}

// ZeroWeight returns the zero quantity.
func ZeroWeight() Weight {
	return Weight{}
}

// Kilograms returns the quantity as a float64.
func (w Weight) Kilograms() float64 {
	return w.kg
}

// Tons returns the quantity converted to metric tons.
func (w Weight) Tons() float64 {
	return w.kg / 1000
}

// IsZero reports whether the weight is exactly zero.
func (w Weight) IsZero() bool {
	return w.kg == 0
}

// IsPositive reports whether the weight is strictly greater than zero.
func (w Weight) IsPositive() bool {
	return w.kg > 0
}

// Add returns the sum of both weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{kg: w.kg + other.kg}
}

// Sub returns the difference w - other.
// Fails with errs.ErrNegativeBalance when other exceeds w.
func (w Weight) Sub(other Weight) (Weight, error) {
	if other.kg > w.kg {
		return Weight{}, fmt.Errorf("%w: %v - %v", errs.ErrNegativeBalance, w.kg, other.kg)
	}
	return Weight{kg: w.kg - other.kg}, nil
}

// LessThan reports whether w is strictly smaller than other.
func (w Weight) LessThan(other Weight) bool {
	return w.kg < other.kg
}

// ApproxEqual reports whether both weights are equal within WeightTolerance.
// Used by the sorting conservation check, where manual scale entries make
// exact equality unrealistic.
func (w Weight) ApproxEqual(other Weight) bool {
	return math.Abs(w.kg-other.kg) <= WeightTolerance
}

// String formats the weight with two decimals and the unit suffix.
func (w Weight) String() string {
	return fmt.Sprintf("%.2f kg", w.kg)
}
