package commands

import (
	"errors"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/processing"
	"millflow/internal/pkg/guard"
)

var ErrCompleteSortingTransferCommandIsNotConstructed = errors.New(
	"CompleteSortingTransferCommand must be created via NewCompleteSortingTransferCommand constructor",
)

// CompleteSortingTransferCommand ships an approved sorting result to its
// destination: the cutting warehouse, direct delivery, or a named other
// warehouse.
type CompleteSortingTransferCommand struct { //nolint:recvcheck //using for validation
	recordID    kernel.UUID
	destination processing.Destination
	warehouseID *kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteSortingTransferCommand creates a command to complete the
// post-sorting transfer. warehouseID may be nil; the aggregate requires it
// only for the other_warehouse destination.
func NewCompleteSortingTransferCommand(
	recordID kernel.UUID,
	destination processing.Destination,
	warehouseID *kernel.UUID,
	actorID kernel.UUID,
) (CompleteSortingTransferCommand, error) {
	cmd := CompleteSortingTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecordID(recordID),
		cmd.setDestination(destination),
		cmd.setWarehouseID(warehouseID),
		cmd.setActorID(actorID),
	); err != nil {
		return CompleteSortingTransferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteSortingTransferCommand) Validate() error {
	return c.guard.Validate(ErrCompleteSortingTransferCommandIsNotConstructed)
}

// RecordID returns the sorting-stage processing record.
func (c CompleteSortingTransferCommand) RecordID() kernel.UUID {
	return c.recordID
}

// Destination returns where the sorted material goes.
func (c CompleteSortingTransferCommand) Destination() processing.Destination {
	return c.destination
}

// WarehouseID returns the target warehouse, when the destination needs one.
func (c CompleteSortingTransferCommand) WarehouseID() *kernel.UUID {
	return c.warehouseID
}

// ActorID returns the acting operator.
func (c CompleteSortingTransferCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CompleteSortingTransferCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}

	c.recordID = recordID
	return nil
}

func (c *CompleteSortingTransferCommand) setDestination(destination processing.Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CompleteSortingTransferCommand) setWarehouseID(warehouseID *kernel.UUID) error {
	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			return err
		}
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *CompleteSortingTransferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
