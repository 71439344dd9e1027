package order_test

import (
	"testing"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWeight(t *testing.T, kg float64) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(kg)
	require.NoError(t, err)
	return w
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260901-0001", order.Outbound, mustWeight(t, 1000))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order at Creation stage", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Creation, o.Stage())
		assert.Equal(t, "ORD-20260901-0001", o.OrderNumber())
		assert.Equal(t, order.Outbound, o.OrderType())
		assert.False(t, o.PricingCalculated())
		assert.Nil(t, o.SubmittedAt())
		assert.Zero(t, o.Version())
	})

	t.Run("requires an order number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", order.Inbound, mustWeight(t, 10))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a positive required weight", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", order.Inbound, kernel.ZeroWeight())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects invalid order type", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", order.TypeUnknown, mustWeight(t, 10))
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero value order is rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("advances along the sequence and stamps timestamps", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AdvanceTo(order.Review))
		assert.NotNil(t, o.SubmittedAt())
		assert.Nil(t, o.ApprovedAt())

		require.NoError(t, o.AdvanceTo(order.MaterialReservation))
		assert.NotNil(t, o.ApprovedAt())
		assert.NotNil(t, o.StartedAt())
	})

	t.Run("skipping a stage fails with OutOfOrder", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AdvanceTo(order.MaterialReservation)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
		assert.Equal(t, order.Creation, o.Stage())
	})

	t.Run("delivery completes into Delivered", func(t *testing.T) {
		o := newTestOrder(t)
		for _, s := range []order.Stage{
			order.Review, order.MaterialReservation, order.Sorting, order.Cutting,
			order.Packaging, order.Invoicing, order.Delivery, order.Delivered,
		} {
			require.NoError(t, o.AdvanceTo(s))
		}

		assert.Equal(t, order.Delivered, o.Stage())
		assert.NotNil(t, o.CompletedAt())
	})
}

func TestOrder_SkipTo(t *testing.T) {
	t.Run("skips forward", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AdvanceTo(order.Review))
		require.NoError(t, o.AdvanceTo(order.MaterialReservation))

		require.NoError(t, o.SkipTo(order.Cutting))
		assert.Equal(t, order.Cutting, o.Stage())
	})

	t.Run("refuses backward skip", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AdvanceTo(order.Review))

		err := o.SkipTo(order.Creation)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels a non-terminal order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AdvanceTo(order.Review))

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Stage())
		assert.NotNil(t, o.CompletedAt())
	})

	t.Run("refuses to cancel twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())
		require.Error(t, o.Cancel())
	})
}

func TestOrder_Pricing(t *testing.T) {
	t.Run("setting inputs resets pricing calculated", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetPricingInputs(50, 20, 5, mustWeight(t, 1000)))
		o.ApplyEstimatedPrice(65)
		require.True(t, o.PricingCalculated())

		require.NoError(t, o.SetPricingInputs(55, 20, 5, mustWeight(t, 1000)))
		assert.False(t, o.PricingCalculated())
	})

	t.Run("rejects negative inputs", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.SetPricingInputs(-1, 0, 0, mustWeight(t, 1000)))
		require.Error(t, o.SetPricingInputs(50, -1, 0, mustWeight(t, 1000)))
		require.Error(t, o.SetPricingInputs(50, 0, -1, mustWeight(t, 1000)))
	})

	t.Run("final price requires current estimate", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.ApplyFinalPrice(65), order.ErrPricingNotCalculated)

		require.NoError(t, o.SetPricingInputs(50, 20, 5, mustWeight(t, 1000)))
		o.ApplyEstimatedPrice(65)
		require.NoError(t, o.ApplyFinalPrice(65))
		require.NotNil(t, o.FinalPrice())
		assert.InDelta(t, 65, *o.FinalPrice(), 0.0001)
	})
}
