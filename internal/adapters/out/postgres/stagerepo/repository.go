package stagerepo

import (
	"context"
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/workstage"
	"millflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkStageRepository implements ports.WorkStageRepository using GORM.
type GormWorkStageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkStageRepository creates a new GORM work stage repository.
func NewGormWorkStageRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkStageRepository {
	return &GormWorkStageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work stage row.
func (r *GormWorkStageRepository) Add(ctx context.Context, aggregate *workstage.WorkStage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing work stage row. Reference data has no concurrent
// writers, so there is no version guard here.
func (r *GormWorkStageRepository) Update(ctx context.Context, aggregate *workstage.WorkStage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&WorkStageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("work stage", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByStage retrieves the row backing one Stage enum value.
func (r *GormWorkStageRepository) GetByStage(ctx context.Context, stage order.Stage) (*workstage.WorkStage, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	var dto WorkStageDTO
	if err := r.db.WithContext(ctx).First(&dto, "stage = ?", int(stage)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work stage", stage.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves the active stages in sequence order.
func (r *GormWorkStageRepository) GetAllActive(ctx context.Context) ([]*workstage.WorkStage, error) {
	var dtos []WorkStageDTO
	err := r.db.WithContext(ctx).Order("sequence").Find(&dtos, "is_active = ?", true).Error
	if err != nil {
		return nil, err
	}

	stages := make([]*workstage.WorkStage, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stages = append(stages, w)
	}

	return stages, nil
}
