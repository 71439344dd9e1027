package processingrepo

import (
	"context"
	"errors"
	"fmt"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProcessingRepository implements ports.ProcessingRepository using GORM.
type GormProcessingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProcessingRepository creates a new GORM processing record repository.
func NewGormProcessingRepository(db *gorm.DB, tracker aggregateTracker) *GormProcessingRepository {
	return &GormProcessingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new processing record to the database with version 1. The
// unique (order_id, stage) index rejects a duplicate record for the same
// stage of the same order.
func (r *GormProcessingRepository) Add(ctx context.Context, aggregate *processing.Record) error {
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

// Update saves an existing record, guarded by the version the aggregate was
// loaded with.
func (r *GormProcessingRepository) Update(ctx context.Context, aggregate *processing.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("processing record", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a processing record by ID.
func (r *GormProcessingRepository) Get(ctx context.Context, id kernel.UUID) (*processing.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("processing record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderAndStage retrieves the record for one order at one stage.
func (r *GormProcessingRepository) GetByOrderAndStage(
	ctx context.Context,
	orderID kernel.UUID,
	stage order.Stage,
) (*processing.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND stage = ?", orderID.Bytes(), int(stage)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"processing record",
				fmt.Sprintf("%s/%s", orderID.String(), stage.String()),
			)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves every processing record of one order, in stage
// order.
func (r *GormProcessingRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*processing.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).Order("stage").Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*processing.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
