package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "millflow/internal/adapters/out/postgres"
	"millflow/internal/adapters/out/postgres/auditrepo"
	"millflow/internal/adapters/out/postgres/orderrepo"
	"millflow/internal/adapters/out/postgres/processingrepo"
	"millflow/internal/adapters/out/postgres/stagerepo"
	"millflow/internal/adapters/out/postgres/transferrepo"
	"millflow/internal/core/domain/model/audit"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/ports"
	"millflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the GORM unit of work commits
// and rolls back changes across all workflow repositories as one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&processingrepo.RecordDTO{},
		&transferrepo.TransferDTO{},
		&auditrepo.EntryDTO{},
		&stagerepo.WorkStageDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_processings, weight_transfers, audit_log_entries, work_stages",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	weight, err := kernel.NewWeight(1000)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260901-0001", order.Outbound, weight)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ProcessingRepository())
	suite.NotNil(uow1.TransferRepository())
	suite.NotNil(uow1.AuditLogRepository())
	suite.NotNil(uow1.WorkStageRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin must not nest")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// An order, its intake processing record and the audit entry land together.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	record, err := processing.NewRecord(kernel.NewUUID(), o.ID(), order.Creation, false)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProcessingRepository().Add(ctx, record))

	actorID := kernel.NewUUID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EventCreated, "order", o.ID().String(),
		&actorID, nil, map[string]any{"order_number": o.OrderNumber()}, "", nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditLogRepository().Append(ctx, entry))

	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.OrderNumber(), loaded.OrderNumber())

	loadedRecord, err := verify.ProcessingRepository().GetByOrderAndStage(ctx, o.ID(), order.Creation)
	suite.Require().NoError(err)
	suite.Equal(processing.Pending, loadedRecord.Status())

	entries, err := verify.AuditLogRepository().GetForSubject(ctx, "order", o.ID().String())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(audit.EventCreated, entries[0].EventType())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	record, err := processing.NewRecord(kernel.NewUUID(), o.ID(), order.Creation, false)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProcessingRepository().Add(ctx, record))

	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err = verify.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = verify.ProcessingRepository().GetByOrderAndStage(ctx, o.ID(), order.Creation)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// Two units of work advance the same order; the slower one loses the version
// check and rolls back.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUpdate_SecondWriterLoses() {
	ctx := context.Background()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	o := suite.newOrder()
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	firstOrder, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	secondOrder, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(firstOrder.AdvanceTo(order.Review))
	suite.Require().NoError(first.OrderRepository().Update(ctx, firstOrder))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(secondOrder.AdvanceTo(order.Review))
	err = second.OrderRepository().Update(ctx, secondOrder)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.Require().NoError(second.Rollback(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Review, loaded.Stage())
	suite.Equal(2, loaded.Version())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
