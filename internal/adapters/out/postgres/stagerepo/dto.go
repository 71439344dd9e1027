// Package stagerepo implements work stage reference data persistence over
// GORM, mapping between the domain model and the work_stages table.
package stagerepo

import (
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/workstage"

	"github.com/google/uuid"
)

// WorkStageDTO represents the database row for one work stage. Name and
// sequence are denormalized from the stage enum so reporting queries can
// read them without joining application code.
type WorkStageDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stage         int       `gorm:"uniqueIndex"`
	Name          string
	LocalizedName string
	Sequence      int
	IsActive      bool
}

// TableName overrides GORM's default naming to use "work_stages".
func (WorkStageDTO) TableName() string {
	return "work_stages"
}

// fromDomain converts a work stage to its database representation.
func fromDomain(w *workstage.WorkStage) WorkStageDTO {
	return WorkStageDTO{
		ID:            w.ID().Bytes(),
		Stage:         int(w.Stage()),
		Name:          w.Name(),
		LocalizedName: w.LocalizedName(),
		Sequence:      w.Sequence(),
		IsActive:      w.IsActive(),
	}
}

// toDomain reconstructs a work stage from its database row.
func toDomain(dto WorkStageDTO) (*workstage.WorkStage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return workstage.RestoreWorkStage(id, order.Stage(dto.Stage), dto.LocalizedName, dto.IsActive)
}
