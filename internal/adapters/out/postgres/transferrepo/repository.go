package transferrepo

import (
	"context"
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransferRepository implements ports.TransferRepository using GORM.
type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransferRepository creates a new GORM weight transfer repository.
func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transfer request to the database with version 1.
func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing transfer, guarded by the version the aggregate
// was loaded with. Two concurrent approvals serialize here: the first bumps
// the version, the second matches zero rows and fails.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&TransferDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("transfer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a transfer by ID.
func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingForOrderAndStage retrieves pending transfers targeting the given
// stage of the given order, oldest request first.
func (r *GormTransferRepository) GetPendingForOrderAndStage(
	ctx context.Context,
	orderID kernel.UUID,
	toStage order.Stage,
) ([]*transfer.Transfer, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := toStage.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransferDTO
	err := r.db.WithContext(ctx).Order("requested_at").
		Find(&dtos, "order_id = ? AND to_stage = ? AND status = ?",
			orderID.Bytes(), int(toStage), int(transfer.Pending)).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPending retrieves every pending transfer in the system, oldest
// request first.
func (r *GormTransferRepository) GetAllPending(ctx context.Context) ([]*transfer.Transfer, error) {
	var dtos []TransferDTO
	err := r.db.WithContext(ctx).Order("requested_at").
		Find(&dtos, "status = ?", int(transfer.Pending)).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []TransferDTO) ([]*transfer.Transfer, error) {
	transfers := make([]*transfer.Transfer, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}
