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

func TestSkipStageCommand_ReasonTooShort(t *testing.T) {
	_, err := commands.NewSkipStageCommand(kernel.NewUUID(), order.Cutting, "n/a", kernel.NewUUID())
	require.ErrorIs(t, err, commands.ErrSkipReasonIsTooShort)
}

func TestSkipStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	o := orderAtStage(t, order.MaterialReservation)

	cmd, err := commands.NewSkipStageCommand(o.ID(), order.Cutting, "sorting done off-site", actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.Orders.On("Update", ctx, o).Return(nil).Once()

	factory := new(MockOrderProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.SkipStageCapability).Return(true, nil).Once()

	h := commands.NewSkipStageCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.Cutting, o.Stage())
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventStageSkipped, uow.Audit.Entries[0].EventType())
	require.Equal(t, "sorting done off-site", uow.Audit.Entries[0].Metadata()["reason"])
}

// The refused skip is itself audited; the order is never loaded.
func TestSkipStageCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()

	cmd, err := commands.NewSkipStageCommand(kernel.NewUUID(), order.Cutting, "sorting done off-site", actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)

	factory := new(MockOrderProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.SkipStageCapability).Return(false, nil).Once()

	h := commands.NewSkipStageCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	uow.Orders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventUnauthorizedAttempt, uow.Audit.Entries[0].EventType())
	require.Equal(t, commands.SkipStageCapability, uow.Audit.Entries[0].Metadata()["capability"])
}

func TestSkipStageCommandHandler_Handle_BackwardSkip(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	o := orderAtStage(t, order.Cutting)

	cmd, err := commands.NewSkipStageCommand(o.ID(), order.Review, "re-do commercial review", actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectRolledBackTx(ctx)
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

	factory := new(MockOrderProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.SkipStageCapability).Return(true, nil).Once()

	h := commands.NewSkipStageCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrOutOfOrder)
	require.Equal(t, order.Cutting, o.Stage())
}
