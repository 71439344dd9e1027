// Package workstage implements the WorkStage reference entity: the display
// and configuration row backing each value of the order.Stage enum. The enum
// defines the canonical sequence; work stages add the localized name shown in
// the UI and the active flag. A stage referenced by historical processing
// records is never mutated, only deactivated.
package workstage

import (
	"errors"
	"fmt"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/pkg/errs"
)

// ErrWorkStageIsNotConstructed is returned when a WorkStage instance was not
// created through the NewWorkStage or RestoreWorkStage factory functions.
var ErrWorkStageIsNotConstructed = errors.New("WorkStage must be created via NewWorkStage or RestoreWorkStage")

// WorkStage is the reference entity for one production stage.
type WorkStage struct {
	id            kernel.UUID
	stage         order.Stage
	name          string
	localizedName string
	sequence      int
	isActive      bool

	isConstructed bool
}

// NewWorkStage creates an active work stage row for a workflow stage.
// The sequence mirrors the numeric order of the Stage enum.
func NewWorkStage(id kernel.UUID, stage order.Stage, localizedName string) (*WorkStage, error) {
	ws := &WorkStage{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		ws.setID(id),
		ws.setStage(stage),
		ws.setLocalizedName(localizedName),
	); err != nil {
		return nil, err
	}

	ws.name = stage.String()
	ws.sequence = int(stage)
	return ws, nil
}

// RestoreWorkStage reconstructs a work stage from persistence.
func RestoreWorkStage(id kernel.UUID, stage order.Stage, localizedName string, isActive bool) (*WorkStage, error) {
	ws, err := NewWorkStage(id, stage, localizedName)
	if err != nil {
		return nil, err
	}
	ws.isActive = isActive
	return ws, nil
}

// Validate ensures the WorkStage was constructed through a factory function.
func (w *WorkStage) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkStageIsNotConstructed
	}
	return nil
}

// ID returns the work stage's unique identifier.
func (w *WorkStage) ID() kernel.UUID {
	return w.id
}

// Stage returns the enum value this row backs.
func (w *WorkStage) Stage() order.Stage {
	return w.stage
}

// Name returns the canonical stage name.
func (w *WorkStage) Name() string {
	return w.name
}

// LocalizedName returns the display name shown to operators.
func (w *WorkStage) LocalizedName() string {
	return w.localizedName
}

// Sequence returns the numeric position in the canonical sequence.
func (w *WorkStage) Sequence() int {
	return w.sequence
}

// IsActive reports whether the stage accepts new orders.
func (w *WorkStage) IsActive() bool {
	return w.isActive
}

// Deactivate retires the stage for new orders without touching history.
func (w *WorkStage) Deactivate() {
	w.isActive = false
}

func (w *WorkStage) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *WorkStage) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	if !stage.IsWorkflowStage() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s is not a workflow stage", stage.String()),
		)
	}
	w.stage = stage
	return nil
}

func (w *WorkStage) setLocalizedName(localizedName string) error {
	if localizedName == "" {
		return errs.NewValueIsRequiredError("localized name")
	}
	w.localizedName = localizedName
	return nil
}
