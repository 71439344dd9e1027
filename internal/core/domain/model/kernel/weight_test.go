package kernel_test

import (
	"math"
	"testing"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeight(t *testing.T) {
	t.Run("creates weight from valid quantity", func(t *testing.T) {
		w, err := kernel.NewWeight(1250.5)

		require.NoError(t, err)
		assert.InDelta(t, 1250.5, w.Kilograms(), 0.0001)
		assert.True(t, w.IsPositive())
	})

	t.Run("zero quantity is valid", func(t *testing.T) {
		w, err := kernel.NewWeight(0)

		require.NoError(t, err)
		assert.True(t, w.IsZero())
		assert.False(t, w.IsPositive())
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := kernel.NewWeight(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("non-finite quantities are rejected", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1)} {
			_, err := kernel.NewWeight(v)
			require.Error(t, err)
		}
	})
}

func TestWeight_Arithmetic(t *testing.T) {
	t.Run("add sums quantities", func(t *testing.T) {
		a, _ := kernel.NewWeight(300)
		b, _ := kernel.NewWeight(200.25)

		assert.InDelta(t, 500.25, a.Add(b).Kilograms(), 0.0001)
	})

	t.Run("sub returns difference", func(t *testing.T) {
		a, _ := kernel.NewWeight(500)
		b, _ := kernel.NewWeight(120)

		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.InDelta(t, 380, diff.Kilograms(), 0.0001)
	})

	t.Run("sub fails when subtrahend exceeds weight", func(t *testing.T) {
		a, _ := kernel.NewWeight(100)
		b, _ := kernel.NewWeight(100.01)

		_, err := a.Sub(b)
		require.ErrorIs(t, err, errs.ErrNegativeBalance)
	})

	t.Run("tons converts from kilograms", func(t *testing.T) {
		a, _ := kernel.NewWeight(1000)

		assert.InDelta(t, 1.0, a.Tons(), 0.0001)
	})
}

func TestWeight_ApproxEqual(t *testing.T) {
	t.Run("within tolerance", func(t *testing.T) {
		a, _ := kernel.NewWeight(500)
		b, _ := kernel.NewWeight(500.009)

		assert.True(t, a.ApproxEqual(b))
	})

	t.Run("outside tolerance", func(t *testing.T) {
		a, _ := kernel.NewWeight(500)
		b, _ := kernel.NewWeight(500.02)

		assert.False(t, a.ApproxEqual(b))
	})
}
