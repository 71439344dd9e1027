package order_test

import (
	"testing"

	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Validate(t *testing.T) {
	t.Run("workflow and terminal stages are valid", func(t *testing.T) {
		for _, s := range []order.Stage{
			order.Creation, order.Review, order.MaterialReservation, order.Sorting,
			order.Cutting, order.Packaging, order.Invoicing, order.Delivery,
			order.Delivered, order.Cancelled,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown and out-of-range values are invalid", func(t *testing.T) {
		require.Error(t, order.StageUnknown.Validate())
		require.Error(t, order.Stage(42).Validate())
		require.Error(t, order.Stage(-1).Validate())
	})
}

func TestStage_Next(t *testing.T) {
	t.Run("follows the canonical sequence", func(t *testing.T) {
		sequence := []order.Stage{
			order.Creation, order.Review, order.MaterialReservation, order.Sorting,
			order.Cutting, order.Packaging, order.Invoicing, order.Delivery, order.Delivered,
		}
		for i := 0; i < len(sequence)-1; i++ {
			next, err := sequence[i].Next()
			require.NoError(t, err)
			assert.Equal(t, sequence[i+1], next)
		}
	})

	t.Run("terminal stages have no successor", func(t *testing.T) {
		_, err := order.Delivered.Next()
		require.Error(t, err)

		_, err = order.Cancelled.Next()
		require.Error(t, err)
	})
}

func TestStage_ValidateAdvanceTo(t *testing.T) {
	t.Run("immediate successor is allowed", func(t *testing.T) {
		require.NoError(t, order.MaterialReservation.ValidateAdvanceTo(order.Sorting))
	})

	t.Run("skipping a stage fails with OutOfOrder", func(t *testing.T) {
		err := order.MaterialReservation.ValidateAdvanceTo(order.Cutting)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
	})

	t.Run("moving backward fails with OutOfOrder", func(t *testing.T) {
		err := order.Cutting.ValidateAdvanceTo(order.Sorting)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
	})
}

func TestStage_ValidateSkipTo(t *testing.T) {
	t.Run("forward skip is allowed", func(t *testing.T) {
		require.NoError(t, order.MaterialReservation.ValidateSkipTo(order.Cutting))
	})

	t.Run("backward skip fails", func(t *testing.T) {
		err := order.Cutting.ValidateSkipTo(order.Review)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
	})

	t.Run("skip to current stage fails", func(t *testing.T) {
		err := order.Sorting.ValidateSkipTo(order.Sorting)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
	})

	t.Run("skip to cancelled fails", func(t *testing.T) {
		err := order.Sorting.ValidateSkipTo(order.Cancelled)
		require.ErrorIs(t, err, errs.ErrOutOfOrder)
	})
}

func TestStage_Cancel(t *testing.T) {
	t.Run("non-terminal stages can be cancelled", func(t *testing.T) {
		next, err := order.Packaging.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})

	t.Run("terminal stages cannot be cancelled", func(t *testing.T) {
		_, err := order.Delivered.Cancel()
		require.Error(t, err)

		_, err = order.Cancelled.Cancel()
		require.Error(t, err)
	})
}

func TestStage_CapabilityName(t *testing.T) {
	assert.Equal(t, "stage.sorting", order.Sorting.CapabilityName())
	assert.Equal(t, "stage.material_reservation", order.MaterialReservation.CapabilityName())
	assert.Empty(t, order.Cancelled.CapabilityName())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "Sorting", order.Sorting.String())
	assert.Equal(t, "Unknown", order.StageUnknown.String())
	assert.Equal(t, "Unknown", order.Stage(99).String())
}
