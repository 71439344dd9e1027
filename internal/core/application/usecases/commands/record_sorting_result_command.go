package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/pkg/guard"
)

var ErrRecordSortingResultCommandIsNotConstructed = errors.New(
	"RecordSortingResultCommand must be created via NewRecordSortingResultCommand constructor",
)

// RecordSortingResultCommand captures the two-roll split a sorting operator
// produced: roll1, roll2 and the weighed waste.
type RecordSortingResultCommand struct { //nolint:recvcheck //using for validation
	recordID    kernel.UUID
	roll1       processing.Roll
	roll2       processing.Roll
	wasteWeight kernel.Weight
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordSortingResultCommand creates a command to record a sorting result.
func NewRecordSortingResultCommand(
	recordID kernel.UUID,
	roll1, roll2 processing.Roll,
	wasteWeight kernel.Weight,
	actorID kernel.UUID,
) (RecordSortingResultCommand, error) {
	cmd := RecordSortingResultCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecordID(recordID),
		cmd.setRolls(roll1, roll2),
		cmd.setActorID(actorID),
	); err != nil {
		return RecordSortingResultCommand{}, err
	}

	cmd.wasteWeight = wasteWeight
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordSortingResultCommand) Validate() error {
	return c.guard.Validate(ErrRecordSortingResultCommandIsNotConstructed)
}

// RecordID returns the sorting-stage processing record.
func (c RecordSortingResultCommand) RecordID() kernel.UUID {
	return c.recordID
}

// Roll1 returns the first output roll.
func (c RecordSortingResultCommand) Roll1() processing.Roll {
	return c.roll1
}

// Roll2 returns the second output roll.
func (c RecordSortingResultCommand) Roll2() processing.Roll {
	return c.roll2
}

// WasteWeight returns the weighed sorting waste.
func (c RecordSortingResultCommand) WasteWeight() kernel.Weight {
	return c.wasteWeight
}

// ActorID returns the recording actor.
func (c RecordSortingResultCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RecordSortingResultCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}

	c.recordID = recordID
	return nil
}

func (c *RecordSortingResultCommand) setRolls(roll1, roll2 processing.Roll) error {
	if err := errors.Join(roll1.Validate(), roll2.Validate()); err != nil {
		return err
	}

	c.roll1 = roll1
	c.roll2 = roll2
	return nil
}

func (c *RecordSortingResultCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
