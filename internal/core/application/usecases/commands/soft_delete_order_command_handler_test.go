package commands_test

import (
	"testing"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSoftDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	o := orderAtStage(t, order.Review)

	cmd, err := commands.NewSoftDeleteOrderCommand(o.ID(), actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.Orders.On("SoftDelete", ctx, o.ID()).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.AdminCapability).Return(true, nil).Once()

	h := commands.NewSoftDeleteOrderCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventSoftDeleted, uow.Audit.Entries[0].EventType())
}

// The refused deletion is itself audited; the order is never touched.
func TestSoftDeleteOrderCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()

	cmd, err := commands.NewSoftDeleteOrderCommand(kernel.NewUUID(), actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.AdminCapability).Return(false, nil).Once()

	h := commands.NewSoftDeleteOrderCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	uow.Orders.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventUnauthorizedAttempt, uow.Audit.Entries[0].EventType())
	require.Equal(t, commands.AdminCapability, uow.Audit.Entries[0].Metadata()["capability"])
}

// Restore shares the admin capability; a denial is audited the same way.
func TestRestoreOrderCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()

	cmd, err := commands.NewRestoreOrderCommand(kernel.NewUUID(), actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.AdminCapability).Return(false, nil).Once()

	h := commands.NewRestoreOrderCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	uow.Orders.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything)
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventUnauthorizedAttempt, uow.Audit.Entries[0].EventType())
}

func TestRestoreOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewRestoreOrderCommand(orderID, actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Orders.On("Restore", ctx, orderID).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.AdminCapability).Return(true, nil).Once()

	h := commands.NewRestoreOrderCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventRestored, uow.Audit.Entries[0].EventType())
}
