package ports

import (
	"context"

	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/workstage"
)

// WorkStageRepository defines the persistence contract for the work stage
// reference data backing the Stage enum.
type WorkStageRepository interface {
	// Add persists a new work stage row.
	Add(ctx context.Context, aggregate *workstage.WorkStage) error

	// Update persists changes to an existing work stage row.
	Update(ctx context.Context, aggregate *workstage.WorkStage) error

	// GetByStage retrieves the row backing one Stage enum value.
	GetByStage(ctx context.Context, stage order.Stage) (*workstage.WorkStage, error)

	// GetAllActive retrieves the active stages in sequence order.
	GetAllActive(ctx context.Context) ([]*workstage.WorkStage, error)
}
