package services_test

import (
	"testing"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/services"
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

func TestWeightLedger_ComputeBalance(t *testing.T) {
	ledger := services.NewWeightLedger()

	t.Run("balance is received minus transferred", func(t *testing.T) {
		balance, err := ledger.ComputeBalance(mustWeight(t, 500), mustWeight(t, 120))

		require.NoError(t, err)
		assert.InDelta(t, 380, balance.Kilograms(), 0.0001)
	})

	t.Run("transferred exceeding received fails with NegativeBalance", func(t *testing.T) {
		_, err := ledger.ComputeBalance(mustWeight(t, 100), mustWeight(t, 150))

		require.ErrorIs(t, err, errs.ErrNegativeBalance)
	})
}

func TestWeightLedger_ValidateTransferRequest(t *testing.T) {
	ledger := services.NewWeightLedger()

	t.Run("request within balance passes", func(t *testing.T) {
		err := ledger.ValidateTransferRequest(mustWeight(t, 500), mustWeight(t, 100), mustWeight(t, 400))
		require.NoError(t, err)
	})

	t.Run("request exceeding balance fails with InsufficientWeight", func(t *testing.T) {
		err := ledger.ValidateTransferRequest(mustWeight(t, 500), kernel.ZeroWeight(), mustWeight(t, 600))
		require.ErrorIs(t, err, errs.ErrInsufficientWeight)
	})

	t.Run("already transferred weight reduces availability", func(t *testing.T) {
		err := ledger.ValidateTransferRequest(mustWeight(t, 500), mustWeight(t, 450), mustWeight(t, 100))
		require.ErrorIs(t, err, errs.ErrInsufficientWeight)
	})
}
