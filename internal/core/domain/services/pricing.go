package services

import (
	"errors"
	"fmt"

	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"
)

// PricingBreakdown exposes each term of a calculated order total for display
// and for the audit trail.
type PricingBreakdown struct {
	MaterialCost float64
	CuttingFees  float64
	Discount     float64
	Total        float64
}

// PricingEngine computes order totals from weight and fees. It is a pure
// function of the order's pricing inputs: identical inputs always produce an
// identical total and breakdown.
type PricingEngine struct{}

// NewPricingEngine creates the pricing service.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// ValidatePricingInputs checks the order's pricing inputs before calculation:
// price per ton and cutting fees must be non-negative, required weight must be
// positive. All violations are joined into one error.
func (PricingEngine) ValidatePricingInputs(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	var validationErrs []error
	if o.PricePerTon() < 0 {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"price per ton", fmt.Errorf("%v is negative", o.PricePerTon())))
	}
	if o.CuttingFees() < 0 {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"cutting fees", fmt.Errorf("%v is negative", o.CuttingFees())))
	}
	if o.Discount() < 0 {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"discount", fmt.Errorf("%v is negative", o.Discount())))
	}
	if !o.RequiredWeight().IsPositive() {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("required weight"))
	}
	return errors.Join(validationErrs...)
}

// CalculateOrderPricing derives the order total:
//
//	material_cost = price_per_ton * required_weight_in_tons
//	total         = material_cost + cutting_fees - discount, clamped to >= 0
//
// Fails when validation fails; callers must not commit a price in that case.
func (e PricingEngine) CalculateOrderPricing(o *order.Order) (PricingBreakdown, error) {
	if err := e.ValidatePricingInputs(o); err != nil {
		return PricingBreakdown{}, err
	}

	materialCost := o.PricePerTon() * o.RequiredWeight().Tons()
	total := materialCost + o.CuttingFees() - o.Discount()
	if total < 0 {
		total = 0
	}

	return PricingBreakdown{
		MaterialCost: materialCost,
		CuttingFees:  o.CuttingFees(),
		Discount:     o.Discount(),
		Total:        total,
	}, nil
}
