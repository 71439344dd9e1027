package commands_test

import (
	"testing"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/core/domain/services"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApproveTransferHandler(
	factory *MockTransferUoWFactory,
	authority *MockAuthorityProvider,
) commands.ApproveTransferCommandHandler {
	return commands.NewApproveTransferCommandHandler(
		factory,
		services.NewApprovalGate(authority),
		audittrail.NewRecorder(testLogger()),
	)
}

func TestApproveTransferCommandHandler_Handle_MovesWeight(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	requester := kernel.NewUUID()
	approver := kernel.NewUUID()

	tr := pendingTransfer(t, orderID, order.MaterialReservation, order.Sorting, 400, requester)
	source := recordAtStage(t, orderID, order.MaterialReservation, 500)
	dest := recordAtStage(t, orderID, order.Sorting, 100)

	cmd, err := commands.NewApproveTransferCommand(tr.ID(), approver)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Transfers.On("Get", ctx, tr.ID()).Return(tr, nil).Once()
	uow.Processing.On("GetByOrderAndStage", ctx, orderID, order.MaterialReservation).Return(source, nil).Once()
	uow.Processing.On("GetByOrderAndStage", ctx, orderID, order.Sorting).Return(dest, nil).Once()
	uow.Processing.On("Update", ctx, dest).Return(nil).Once()
	uow.Processing.On("Update", ctx, source).Return(nil).Once()
	uow.Transfers.On("Update", ctx, tr).Return(nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, approver, "stage.sorting").Return(true, nil).Once()

	h := newApproveTransferHandler(factory, authority)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, transfer.Approved, tr.Status())
	require.InDelta(t, 400, source.WeightToTransfer().Kilograms(), 0.001)
	require.InDelta(t, 100, source.WeightBalance().Kilograms(), 0.001)
	require.InDelta(t, 500, dest.WeightReceived().Kilograms(), 0.001)
	require.True(t, source.TransferApproved())

	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventTransferApproved, uow.Audit.Entries[0].EventType())
	uow.AssertExpectations(t)
}

// The destination record is created on first approved transfer when the order
// has not reached that stage yet.
func TestApproveTransferCommandHandler_Handle_CreatesDestinationRecord(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	approver := kernel.NewUUID()

	tr := pendingTransfer(t, orderID, order.MaterialReservation, order.Sorting, 200, kernel.NewUUID())
	source := recordAtStage(t, orderID, order.MaterialReservation, 500)

	cmd, err := commands.NewApproveTransferCommand(tr.ID(), approver)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Transfers.On("Get", ctx, tr.ID()).Return(tr, nil).Once()
	uow.Processing.On("GetByOrderAndStage", ctx, orderID, order.MaterialReservation).Return(source, nil).Once()
	uow.Processing.On("GetByOrderAndStage", ctx, orderID, order.Sorting).
		Return(nil, errs.NewObjectNotFoundError("record", orderID.String())).Once()
	uow.Processing.On("Add", ctx, mock.AnythingOfType("*processing.Record")).Return(nil).Once()
	uow.Processing.On("Update", ctx, source).Return(nil).Once()
	uow.Transfers.On("Update", ctx, tr).Return(nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, approver, "stage.sorting").Return(true, nil).Once()

	h := newApproveTransferHandler(factory, authority)
	require.NoError(t, h.Handle(ctx, cmd))

	var created *processing.Record
	for _, call := range uow.Processing.Calls {
		if call.Method == "Add" {
			created = call.Arguments.Get(1).(*processing.Record)
		}
	}
	require.NotNil(t, created)
	require.Equal(t, order.Sorting, created.Stage())
	require.InDelta(t, 200, created.WeightReceived().Kilograms(), 0.001)
}

func TestApproveTransferCommandHandler_Handle_AlreadyResolved(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	approver := kernel.NewUUID()

	tr := pendingTransfer(t, orderID, order.MaterialReservation, order.Sorting, 200, kernel.NewUUID())
	require.NoError(t, tr.Approve(kernel.NewUUID()))

	cmd, err := commands.NewApproveTransferCommand(tr.ID(), approver)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectRolledBackTx(ctx)
	uow.Transfers.On("Get", ctx, tr.ID()).Return(tr, nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, approver, "stage.sorting").Return(true, nil).Once()

	h := newApproveTransferHandler(factory, authority)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)

	uow.Processing.AssertNotCalled(t, "GetByOrderAndStage", mock.Anything, mock.Anything, mock.Anything)
	require.Empty(t, uow.Audit.Entries)
}

// Self-approval is refused, and the refused attempt itself lands in the trail.
func TestApproveTransferCommandHandler_Handle_SelfApproval(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	requester := kernel.NewUUID()

	tr := pendingTransfer(t, orderID, order.MaterialReservation, order.Sorting, 200, requester)

	cmd, err := commands.NewApproveTransferCommand(tr.ID(), requester)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Transfers.On("Get", ctx, tr.ID()).Return(tr, nil).Once()

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newApproveTransferHandler(factory, new(MockAuthorityProvider))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	require.Equal(t, transfer.Pending, tr.Status())
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventUnauthorizedAttempt, uow.Audit.Entries[0].EventType())
}
