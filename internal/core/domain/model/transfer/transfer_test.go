package transfer_test

import (
	"testing"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/transfer"
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

func newTestTransfer(t *testing.T) *transfer.Transfer {
	t.Helper()
	tr, err := transfer.NewTransfer(
		kernel.NewUUID(), kernel.NewUUID(),
		order.MaterialReservation, order.Sorting,
		mustWeight(t, 300), kernel.NewUUID(),
	)
	require.NoError(t, err)
	return tr
}

func TestNewTransfer(t *testing.T) {
	t.Run("creates pending transfer", func(t *testing.T) {
		tr := newTestTransfer(t)

		assert.Equal(t, transfer.Pending, tr.Status())
		assert.Nil(t, tr.ApprovedBy())
		assert.Nil(t, tr.RejectedBy())
		assert.False(t, tr.RequestedAt().IsZero())
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, err := transfer.NewTransfer(
			kernel.NewUUID(), kernel.NewUUID(),
			order.MaterialReservation, order.Sorting,
			kernel.ZeroWeight(), kernel.NewUUID(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects backward stage move", func(t *testing.T) {
		_, err := transfer.NewTransfer(
			kernel.NewUUID(), kernel.NewUUID(),
			order.Sorting, order.MaterialReservation,
			mustWeight(t, 100), kernel.NewUUID(),
		)
		require.Error(t, err)
	})
}

func TestTransfer_Approve(t *testing.T) {
	t.Run("pending transfer approves", func(t *testing.T) {
		tr := newTestTransfer(t)
		approver := kernel.NewUUID()

		require.NoError(t, tr.Approve(approver))
		assert.Equal(t, transfer.Approved, tr.Status())
		require.NotNil(t, tr.ApprovedBy())
		assert.True(t, tr.ApprovedBy().IsEqual(approver))
		assert.NotNil(t, tr.ApprovedAt())
	})

	t.Run("requester cannot approve", func(t *testing.T) {
		tr := newTestTransfer(t)

		err := tr.Approve(tr.RequestedBy())
		require.ErrorIs(t, err, transfer.ErrSelfApproval)
		assert.Equal(t, transfer.Pending, tr.Status())
	})

	t.Run("approving a resolved transfer fails with AlreadyResolved", func(t *testing.T) {
		tr := newTestTransfer(t)
		require.NoError(t, tr.Approve(kernel.NewUUID()))
		firstApprover := *tr.ApprovedBy()

		err := tr.Approve(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrAlreadyResolved)
		assert.True(t, tr.ApprovedBy().IsEqual(firstApprover))
	})
}

func TestTransfer_Reject(t *testing.T) {
	t.Run("pending transfer rejects with reason", func(t *testing.T) {
		tr := newTestTransfer(t)
		rejecter := kernel.NewUUID()

		require.NoError(t, tr.Reject(rejecter, "weight ticket does not match the scale reading"))
		assert.Equal(t, transfer.Rejected, tr.Status())
		require.NotNil(t, tr.RejectedBy())
		assert.True(t, tr.RejectedBy().IsEqual(rejecter))
		assert.NotEmpty(t, tr.RejectionReason())
	})

	t.Run("reason below minimum length fails", func(t *testing.T) {
		tr := newTestTransfer(t)
		err := tr.Reject(kernel.NewUUID(), "bad")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, transfer.Pending, tr.Status())
	})

	t.Run("rejecting a resolved transfer fails with AlreadyResolved", func(t *testing.T) {
		tr := newTestTransfer(t)
		require.NoError(t, tr.Approve(kernel.NewUUID()))

		err := tr.Reject(kernel.NewUUID(), "some sufficiently long reason")
		require.ErrorIs(t, err, errs.ErrAlreadyResolved)
	})
}
