package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "millflow/internal/adapters/in/http"
	"millflow/internal/adapters/out/authority"
	"millflow/internal/adapters/out/notify"
	"millflow/internal/adapters/out/postgres"
	"millflow/internal/core/application/audittrail"
	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/application/usecases/queries"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/workstage"
	"millflow/internal/core/domain/services"
	"millflow/internal/core/ports"
	"millflow/internal/jobs"
	"millflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, services and use case handlers together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	numbers    ports.OrderNumberGenerator
	authority  ports.AuthorityProvider
	notifier   ports.Notifier
	recorder   audittrail.Recorder
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the given configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	grants, err := authority.LoadGrantsFile(config.AuthorityGrantsFile)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		numbers:    postgres.NewGormOrderNumberGenerator(gormDB),
		authority:  authority.NewStaticAuthorityProvider(grants),
		notifier:   notify.NewSlogNotifier(logger),
		recorder:   audittrail.NewRecorder(logger),
		logger:     logger,
	}, nil
}

// SeedWorkStages inserts the reference row for every workflow stage that does
// not have one yet. Idempotent; runs at startup after migrations.
func (c *CompositionRoot) SeedWorkStages(ctx context.Context) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkStageRepository()
	for stage := order.Creation; stage <= order.Delivery; stage++ {
		_, err := repo.GetByStage(ctx, stage)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		row, err := workstage.NewWorkStage(kernel.NewUUID(), stage, stage.String())
		if err != nil {
			return err
		}
		if err := repo.Add(ctx, row); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("failed to seed work stages: %w", err)
	}
	return nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderProcessingUoWFactory = FuncOrderProcessingUoWFactory(func() commands.OrderProcessingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.numbers, c.recorder)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	var f commands.OrderProcessingUoWFactory = FuncOrderProcessingUoWFactory(func() commands.OrderProcessingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceStageCommandHandler(f, c.authority, c.recorder)
}

func (c *CompositionRoot) CreateSkipStageCommandHandler() commands.SkipStageCommandHandler {
	var f commands.OrderProcessingUoWFactory = FuncOrderProcessingUoWFactory(func() commands.OrderProcessingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSkipStageCommandHandler(f, c.authority, c.recorder)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderProcessingUoWFactory = FuncOrderProcessingUoWFactory(func() commands.OrderProcessingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.authority, c.recorder)
}

func (c *CompositionRoot) CreateCalculateOrderPricingCommandHandler() commands.CalculateOrderPricingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCalculateOrderPricingCommandHandler(f, services.NewPricingEngine(), c.recorder)
}

func (c *CompositionRoot) CreateSoftDeleteOrderCommandHandler() commands.SoftDeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSoftDeleteOrderCommandHandler(f, c.authority, c.recorder)
}

func (c *CompositionRoot) CreateRestoreOrderCommandHandler() commands.RestoreOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestoreOrderCommandHandler(f, c.authority, c.recorder)
}

func (c *CompositionRoot) CreateRequestTransferCommandHandler() commands.RequestTransferCommandHandler {
	return commands.NewRequestTransferCommandHandler(
		c.transferUoWFactory(),
		services.NewWeightLedger(),
		c.recorder,
		c.authority,
		c.notifier,
		c.logger,
	)
}

func (c *CompositionRoot) CreateApproveTransferCommandHandler() commands.ApproveTransferCommandHandler {
	return commands.NewApproveTransferCommandHandler(
		c.transferUoWFactory(),
		services.NewApprovalGate(c.authority),
		c.recorder,
	)
}

func (c *CompositionRoot) CreateRejectTransferCommandHandler() commands.RejectTransferCommandHandler {
	return commands.NewRejectTransferCommandHandler(
		c.transferUoWFactory(),
		services.NewApprovalGate(c.authority),
		c.recorder,
		c.notifier,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRequestHandoverCommandHandler() commands.RequestHandoverCommandHandler {
	return commands.NewRequestHandoverCommandHandler(c.processingUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateConfirmHandoverCommandHandler() commands.ConfirmHandoverCommandHandler {
	return commands.NewConfirmHandoverCommandHandler(c.processingUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateRecordSortingResultCommandHandler() commands.RecordSortingResultCommandHandler {
	return commands.NewRecordSortingResultCommandHandler(c.processingUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateApproveSortingCommandHandler() commands.ApproveSortingCommandHandler {
	return commands.NewApproveSortingCommandHandler(c.processingUoWFactory(), c.authority, c.recorder)
}

func (c *CompositionRoot) CreateCompleteSortingTransferCommandHandler() commands.CompleteSortingTransferCommandHandler {
	return commands.NewCompleteSortingTransferCommandHandler(c.processingUoWFactory(), c.recorder)
}

func (c *CompositionRoot) CreateRemindPendingTransfersCommandHandler() commands.RemindPendingTransfersCommandHandler {
	return commands.NewRemindPendingTransfersCommandHandler(
		c.transferUoWFactory(),
		c.authority,
		c.notifier,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetPendingTransfersQueryHandler() queries.GetPendingTransfersQueryHandler {
	return queries.NewGetPendingTransfersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProcessingRecordQueryHandler() queries.GetProcessingRecordQueryHandler {
	return queries.NewGetProcessingRecordQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the API server over all command and query handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceStageCommandHandler(),
		c.CreateSkipStageCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCalculateOrderPricingCommandHandler(),
		c.CreateSoftDeleteOrderCommandHandler(),
		c.CreateRestoreOrderCommandHandler(),
		c.CreateRequestTransferCommandHandler(),
		c.CreateApproveTransferCommandHandler(),
		c.CreateRejectTransferCommandHandler(),
		c.CreateRequestHandoverCommandHandler(),
		c.CreateConfirmHandoverCommandHandler(),
		c.CreateRecordSortingResultCommandHandler(),
		c.CreateApproveSortingCommandHandler(),
		c.CreateCompleteSortingTransferCommandHandler(),
		c.CreateGetPendingTransfersQueryHandler(),
		c.CreateGetProcessingRecordQueryHandler(),
		c.CreateGetAuditTrailQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRemindPendingTransfersCommandHandler(), c.logger)
}

func (c *CompositionRoot) transferUoWFactory() commands.TransferUoWFactory {
	return FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) processingUoWFactory() commands.ProcessingUoWFactory {
	return FuncProcessingUoWFactory(func() commands.ProcessingUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProcessingUoWFactory func() commands.ProcessingUoW

func (f FuncProcessingUoWFactory) Create() commands.ProcessingUoW {
	return f()
}

type FuncOrderProcessingUoWFactory func() commands.OrderProcessingUoW

func (f FuncOrderProcessingUoWFactory) Create() commands.OrderProcessingUoW {
	return f()
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}
