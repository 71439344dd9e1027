package commands_test

import (
	"testing"

	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sortingRoll(t *testing.T, kg, width float64, location string) processing.Roll {
	t.Helper()
	return processing.Roll{
		Weight:   mustWeight(t, kg),
		Width:    width,
		Location: location,
	}
}

// sortedRecord builds a sorting-stage record with a recorded two-roll split.
func sortedRecord(t *testing.T, receivedKg, roll1Kg, roll2Kg, wasteKg float64) *processing.Record {
	t.Helper()
	record := recordAtStage(t, kernel.NewUUID(), order.Sorting, receivedKg)
	require.NoError(t, record.RecordSortingResult(
		sortingRoll(t, roll1Kg, 1.5, "rack A"),
		sortingRoll(t, roll2Kg, 1.2, "rack B"),
		mustWeight(t, wasteKg),
	))
	return record
}

func TestRecordSortingResultCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	record := recordAtStage(t, kernel.NewUUID(), order.Sorting, 500)

	cmd, err := commands.NewRecordSortingResultCommand(
		record.ID(),
		sortingRoll(t, 300, 1.5, "rack A"),
		sortingRoll(t, 180, 1.2, "rack B"),
		mustWeight(t, 20),
		actor,
	)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()
	uow.Processing.On("Update", ctx, record).Return(nil).Once()

	factory := new(MockProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordSortingResultCommandHandler(factory, audittrail.NewRecorder(testLogger()))
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, record.Roll1())
	require.InDelta(t, 300, record.Roll1().Weight.Kilograms(), 0.001)
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventUpdated, uow.Audit.Entries[0].EventType())
}

func TestApproveSortingCommandHandler_Handle_AssignedActor(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	record := sortedRecord(t, 500, 300, 180, 20)
	require.NoError(t, record.Assign(actor))

	cmd, err := commands.NewApproveSortingCommand(record.ID(), actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()
	uow.Processing.On("Update", ctx, record).Return(nil).Once()

	factory := new(MockProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Assigned actor needs no override capability.
	authority := new(MockAuthorityProvider)

	h := commands.NewApproveSortingCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	warning, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, warning)

	require.True(t, record.SortingApproved())
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventSortingApproved, uow.Audit.Entries[0].EventType())
	authority.AssertNotCalled(t, "HasCapability", mock.Anything, mock.Anything, mock.Anything)
}

// A roll split that does not add up to the received weight is approved with a
// warning, and the discrepancy lands in the audit metadata.
func TestApproveSortingCommandHandler_Handle_ConservationWarning(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	record := sortedRecord(t, 500, 300, 150, 20)

	cmd, err := commands.NewApproveSortingCommand(record.ID(), actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()
	uow.Processing.On("Update", ctx, record).Return(nil).Once()

	factory := new(MockProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.ApproveSortingCapability).Return(true, nil).Once()

	h := commands.NewApproveSortingCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	warning, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotEmpty(t, warning)

	require.True(t, record.SortingApproved())
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, warning, uow.Audit.Entries[0].Metadata()["warning"])
}

// An unassigned actor without the override capability is refused, and the
// refusal itself is audited while the record stays unapproved.
func TestApproveSortingCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	record := sortedRecord(t, 500, 300, 180, 20)

	cmd, err := commands.NewApproveSortingCommand(record.ID(), actor)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx)
	uow.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()

	factory := new(MockProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	authority := new(MockAuthorityProvider)
	authority.On("HasCapability", ctx, actor, commands.ApproveSortingCapability).Return(false, nil).Once()

	h := commands.NewApproveSortingCommandHandler(factory, authority, audittrail.NewRecorder(testLogger()))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	require.False(t, record.SortingApproved())
	uow.Processing.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	require.Len(t, uow.Audit.Entries, 1)
	require.Equal(t, audit.EventUnauthorizedAttempt, uow.Audit.Entries[0].EventType())
}

// The post-sorting transfer is one-shot: the second call fails and writes no
// second audit entry.
func TestCompleteSortingTransferCommandHandler_Handle_Idempotence(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	record := sortedRecord(t, 500, 300, 180, 20)
	_, err := record.ApproveSorting(actor)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteSortingTransferCommand(
		record.ID(), processing.CuttingWarehouse, nil, actor,
	)
	require.NoError(t, err)

	first := NewMockUoW()
	first.expectTx(ctx)
	first.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()
	first.Processing.On("Update", ctx, record).Return(nil).Once()

	factory := new(MockProcessingUoWFactory)
	factory.On("Create").Return(first).Once()

	h := commands.NewCompleteSortingTransferCommandHandler(factory, audittrail.NewRecorder(testLogger()))
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, record.SortingTransferCompleted())
	require.Len(t, first.Audit.Entries, 1)
	require.Equal(t, audit.EventSortingTransferCompleted, first.Audit.Entries[0].EventType())

	second := NewMockUoW()
	second.expectRolledBackTx(ctx)
	second.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()
	factory.On("Create").Return(second).Once()

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrAlreadyTransferred)
	require.Empty(t, second.Audit.Entries)
}

// other_warehouse needs an explicit destination warehouse.
func TestCompleteSortingTransferCommandHandler_Handle_MissingDestination(t *testing.T) {
	ctx := t.Context()
	actor := kernel.NewUUID()
	record := sortedRecord(t, 500, 300, 180, 20)
	_, err := record.ApproveSorting(actor)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteSortingTransferCommand(
		record.ID(), processing.OtherWarehouse, nil, actor,
	)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectRolledBackTx(ctx)
	uow.Processing.On("Get", ctx, record.ID()).Return(record, nil).Once()

	factory := new(MockProcessingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteSortingTransferCommandHandler(factory, audittrail.NewRecorder(testLogger()))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrMissingDestination)
	require.False(t, record.SortingTransferCompleted())
}
