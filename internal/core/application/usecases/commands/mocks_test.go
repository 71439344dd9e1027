package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllInStage(ctx context.Context, stage order.Stage) ([]*order.Order, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) SoftDelete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepository) Restore(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProcessingRepository struct{ mock.Mock }

func (m *MockProcessingRepository) Add(ctx context.Context, r *processing.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockProcessingRepository) Update(ctx context.Context, r *processing.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockProcessingRepository) Get(ctx context.Context, id kernel.UUID) (*processing.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processing.Record), args.Error(1)
}
func (m *MockProcessingRepository) GetByOrderAndStage(
	ctx context.Context, orderID kernel.UUID, stage order.Stage,
) (*processing.Record, error) {
	args := m.Called(ctx, orderID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processing.Record), args.Error(1)
}
func (m *MockProcessingRepository) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*processing.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*processing.Record), args.Error(1)
}

type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) Add(ctx context.Context, t *transfer.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransferRepository) Update(ctx context.Context, t *transfer.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}
func (m *MockTransferRepository) GetPendingForOrderAndStage(
	ctx context.Context, orderID kernel.UUID, toStage order.Stage,
) ([]*transfer.Transfer, error) {
	args := m.Called(ctx, orderID, toStage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}
func (m *MockTransferRepository) GetAllPending(ctx context.Context) ([]*transfer.Transfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}

// MockAuditLogRepository records appended entries for assertion instead of
// scripting expectations: audit writes are a side channel in most tests.
type MockAuditLogRepository struct {
	Entries []*audit.Entry
	Err     error
}

func (m *MockAuditLogRepository) Append(_ context.Context, entry *audit.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entry)
	return nil
}
func (m *MockAuditLogRepository) GetForSubject(_ context.Context, _, _ string) ([]*audit.Entry, error) {
	return m.Entries, nil
}

// MockUoW satisfies every unit of work interface the handlers declare.
type MockUoW struct {
	mock.Mock
	Orders     *MockOrderRepository
	Processing *MockProcessingRepository
	Transfers  *MockTransferRepository
	Audit      *MockAuditLogRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Orders:     new(MockOrderRepository),
		Processing: new(MockProcessingRepository),
		Transfers:  new(MockTransferRepository),
		Audit:      new(MockAuditLogRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.Orders }
func (m *MockUoW) ProcessingRepository() ports.ProcessingRepository { return m.Processing }
func (m *MockUoW) TransferRepository() ports.TransferRepository     { return m.Transfers }
func (m *MockUoW) AuditLogRepository() ports.AuditLogRepository     { return m.Audit }

// expectTx scripts the begin/commit/rollback lifecycle of a successful run.
func (m *MockUoW) expectTx(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Commit", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

// expectRolledBackTx scripts a run that never reaches commit.
func (m *MockUoW) expectRolledBackTx(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockProcessingUoWFactory struct{ mock.Mock }

func (m *MockProcessingUoWFactory) Create() commands.ProcessingUoW {
	args := m.Called()
	return args.Get(0).(commands.ProcessingUoW)
}

type MockOrderProcessingUoWFactory struct{ mock.Mock }

func (m *MockOrderProcessingUoWFactory) Create() commands.OrderProcessingUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderProcessingUoW)
}

type MockTransferUoWFactory struct{ mock.Mock }

func (m *MockTransferUoWFactory) Create() commands.TransferUoW {
	args := m.Called()
	return args.Get(0).(commands.TransferUoW)
}

type MockAuthorityProvider struct{ mock.Mock }

func (m *MockAuthorityProvider) CurrentActor(ctx context.Context) (ports.Actor, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Actor), args.Error(1)
}
func (m *MockAuthorityProvider) HasCapability(
	ctx context.Context, actorID kernel.UUID, capability string,
) (bool, error) {
	args := m.Called(ctx, actorID, capability)
	return args.Bool(0), args.Error(1)
}
func (m *MockAuthorityProvider) ApproversFor(ctx context.Context, capability string) ([]ports.Actor, error) {
	args := m.Called(ctx, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Actor), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(
	ctx context.Context, actorID kernel.UUID, eventType string, payload map[string]any,
) error {
	args := m.Called(ctx, actorID, eventType, payload)
	return args.Error(0)
}

type MockOrderNumberGenerator struct{ mock.Mock }

func (m *MockOrderNumberGenerator) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustWeight(t *testing.T, kg float64) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(kg)
	require.NoError(t, err)
	return w
}

// orderAtStage builds an order sitting at the given stage.
func orderAtStage(t *testing.T, stage order.Stage) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-20260901-0001", order.Outbound, stage,
		mustWeight(t, 1000), 0, 0, 0, nil, nil, false,
		time.Now().UTC(), nil, nil, nil, nil, 1,
	)
	require.NoError(t, err)
	return o
}

// recordAtStage builds a processing record with received weight and no
// outgoing transfers.
func recordAtStage(t *testing.T, orderID kernel.UUID, stage order.Stage, receivedKg float64) *processing.Record {
	t.Helper()
	r, err := processing.RestoreRecord(processing.RestoreValues{
		ID:             kernel.NewUUID(),
		OrderID:        orderID,
		Stage:          stage,
		Status:         processing.InProgress,
		WeightReceived: mustWeight(t, receivedKg),
		HandoverStatus: processing.HandoverNotRequired,
		Version:        1,
	})
	require.NoError(t, err)
	return r
}

func pendingTransfer(t *testing.T, orderID kernel.UUID, from, to order.Stage, kg float64, requestedBy kernel.UUID) *transfer.Transfer {
	t.Helper()
	tr, err := transfer.NewTransfer(kernel.NewUUID(), orderID, from, to, mustWeight(t, kg), requestedBy)
	require.NoError(t, err)
	return tr
}
