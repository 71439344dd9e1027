package commands_test

import (
	"errors"
	"testing"

	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemindPendingTransfersCommandHandler_Handle_NotifiesApprovers(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	pending := pendingTransfer(t, orderID, order.Sorting, order.Cutting, 300, kernel.NewUUID())

	uow := NewMockUoW()
	uow.expectRolledBackTx(ctx)
	uow.Transfers.On("GetAllPending", ctx).Return([]*transfer.Transfer{pending}, nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	approver := ports.Actor{ID: kernel.NewUUID(), Name: "Cutting Lead"}
	authority := new(MockAuthorityProvider)
	authority.On("ApproversFor", ctx, order.Cutting.CapabilityName()).
		Return([]ports.Actor{approver}, nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, approver.ID, "transfer_pending_reminder", mock.MatchedBy(func(payload map[string]any) bool {
		return payload["transfer_id"] == pending.ID().String() &&
			payload["order_id"] == orderID.String()
	})).Return(nil).Once()

	h := commands.NewRemindPendingTransfersCommandHandler(factory, authority, notifier, testLogger())

	require.NoError(t, h.Handle(ctx, commands.NewRemindPendingTransfersCommand()))

	uow.AssertExpectations(t)
	authority.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRemindPendingTransfersCommandHandler_Handle_NoPendingTransfers(t *testing.T) {
	ctx := t.Context()

	uow := NewMockUoW()
	uow.expectRolledBackTx(ctx)
	uow.Transfers.On("GetAllPending", ctx).Return([]*transfer.Transfer{}, nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	notifier := new(MockNotifier)

	h := commands.NewRemindPendingTransfersCommandHandler(factory, authority, notifier, testLogger())

	require.NoError(t, h.Handle(ctx, commands.NewRemindPendingTransfersCommand()))

	authority.AssertNotCalled(t, "ApproversFor", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Delivery failures are logged, not returned: one broken mailbox must not
// stop the sweep.
func TestRemindPendingTransfersCommandHandler_Handle_NotifyFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	pending := pendingTransfer(t, kernel.NewUUID(), order.Sorting, order.Cutting, 300, kernel.NewUUID())

	uow := NewMockUoW()
	uow.expectRolledBackTx(ctx)
	uow.Transfers.On("GetAllPending", ctx).Return([]*transfer.Transfer{pending}, nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	approver := ports.Actor{ID: kernel.NewUUID(), Name: "Cutting Lead"}
	authority := new(MockAuthorityProvider)
	authority.On("ApproversFor", ctx, order.Cutting.CapabilityName()).
		Return([]ports.Actor{approver}, nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, approver.ID, "transfer_pending_reminder", mock.Anything).
		Return(errors.New("smtp unreachable")).Once()

	h := commands.NewRemindPendingTransfersCommandHandler(factory, authority, notifier, testLogger())

	require.NoError(t, h.Handle(ctx, commands.NewRemindPendingTransfersCommand()))
	notifier.AssertExpectations(t)
}
