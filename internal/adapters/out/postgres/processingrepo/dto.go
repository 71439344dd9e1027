// Package processingrepo implements processing record persistence over GORM,
// mapping between the domain model and the order_processings table.
package processingrepo

import (
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"

	"github.com/google/uuid"
)

// RecordDTO represents the database row for one per-(order, stage) processing
// record. Stage, status, handover status and destination are stored as their
// numeric enum values; the sorting roll columns are null until the two-roll
// split is recorded.
type RecordDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index:idx_order_stage,unique"`
	Stage   int       `gorm:"index:idx_order_stage,unique"`
	Status  int

	AssignedTo *uuid.UUID `gorm:"type:uuid"`

	WeightReceived   float64
	WeightToTransfer float64

	TransferDestination *int
	TransferApproved    bool
	TransferApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	TransferApprovedAt  *time.Time

	MandatoryHandover   bool
	HandoverStatus      int
	HandoverFrom        *uuid.UUID `gorm:"type:uuid"`
	HandoverTo          *uuid.UUID `gorm:"type:uuid"`
	HandoverRequestedAt *time.Time
	HandoverCompletedAt *time.Time

	SortingApproved   bool
	SortingApprovedBy *uuid.UUID `gorm:"type:uuid"`
	SortingApprovedAt *time.Time

	Roll1Weight   *float64
	Roll1Width    *float64
	Roll1Location *string
	Roll2Weight   *float64
	Roll2Width    *float64
	Roll2Location *string
	WasteWeight   float64

	PostSortingDestination     int
	DestinationWarehouseID     *uuid.UUID `gorm:"type:uuid"`
	SortingTransferCompleted   bool
	SortingTransferCompletedAt *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "order_processings".
func (RecordDTO) TableName() string {
	return "order_processings"
}

// fromDomain converts a processing record aggregate to its database
// representation.
func fromDomain(r *processing.Record) RecordDTO {
	dto := RecordDTO{
		ID:                         r.ID().Bytes(),
		OrderID:                    r.OrderID().Bytes(),
		Stage:                      int(r.Stage()),
		Status:                     int(r.Status()),
		AssignedTo:                 uuidPtr(r.AssignedTo()),
		WeightReceived:             r.WeightReceived().Kilograms(),
		WeightToTransfer:           r.WeightToTransfer().Kilograms(),
		TransferApproved:           r.TransferApproved(),
		TransferApprovedBy:         uuidPtr(r.TransferApprovedBy()),
		TransferApprovedAt:         r.TransferApprovedAt(),
		MandatoryHandover:          r.MandatoryHandover(),
		HandoverStatus:             int(r.HandoverStatus()),
		HandoverFrom:               uuidPtr(r.HandoverFrom()),
		HandoverTo:                 uuidPtr(r.HandoverTo()),
		HandoverRequestedAt:        r.HandoverRequestedAt(),
		HandoverCompletedAt:        r.HandoverCompletedAt(),
		SortingApproved:            r.SortingApproved(),
		SortingApprovedBy:          uuidPtr(r.SortingApprovedBy()),
		SortingApprovedAt:          r.SortingApprovedAt(),
		WasteWeight:                r.WasteWeight().Kilograms(),
		PostSortingDestination:     int(r.PostSortingDestination()),
		DestinationWarehouseID:     uuidPtr(r.DestinationWarehouseID()),
		SortingTransferCompleted:   r.SortingTransferCompleted(),
		SortingTransferCompletedAt: r.SortingTransferCompletedAt(),
		Version:                    r.Version(),
	}

	if dest := r.TransferDestination(); dest != nil {
		v := int(*dest)
		dto.TransferDestination = &v
	}

	if roll := r.Roll1(); roll != nil {
		w, wd, loc := roll.Weight.Kilograms(), roll.Width, roll.Location
		dto.Roll1Weight, dto.Roll1Width, dto.Roll1Location = &w, &wd, &loc
	}
	if roll := r.Roll2(); roll != nil {
		w, wd, loc := roll.Weight.Kilograms(), roll.Width, roll.Location
		dto.Roll2Weight, dto.Roll2Width, dto.Roll2Location = &w, &wd, &loc
	}

	return dto
}

// toDomain reconstructs a processing record aggregate from its database row.
func toDomain(dto RecordDTO) (*processing.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	weightReceived, err := kernel.NewWeight(dto.WeightReceived)
	if err != nil {
		return nil, err
	}
	weightToTransfer, err := kernel.NewWeight(dto.WeightToTransfer)
	if err != nil {
		return nil, err
	}
	wasteWeight, err := kernel.NewWeight(dto.WasteWeight)
	if err != nil {
		return nil, err
	}

	values := processing.RestoreValues{
		ID:      id,
		OrderID: orderID,
		Stage:   order.Stage(dto.Stage),
		Status:  processing.Status(dto.Status),

		WeightReceived:   weightReceived,
		WeightToTransfer: weightToTransfer,

		TransferApproved:   dto.TransferApproved,
		TransferApprovedAt: dto.TransferApprovedAt,

		MandatoryHandover:   dto.MandatoryHandover,
		HandoverStatus:      processing.HandoverStatus(dto.HandoverStatus),
		HandoverRequestedAt: dto.HandoverRequestedAt,
		HandoverCompletedAt: dto.HandoverCompletedAt,

		SortingApproved:   dto.SortingApproved,
		SortingApprovedAt: dto.SortingApprovedAt,

		WasteWeight:            wasteWeight,
		PostSortingDestination: processing.Destination(dto.PostSortingDestination),
		TransferCompleted:      dto.SortingTransferCompleted,
		TransferCompletedAt:    dto.SortingTransferCompletedAt,

		Version: dto.Version,
	}

	if dto.TransferDestination != nil {
		dest := order.Stage(*dto.TransferDestination)
		values.TransferDestination = &dest
	}

	if values.AssignedTo, err = kernelUUIDPtr(dto.AssignedTo); err != nil {
		return nil, err
	}
	if values.TransferApprovedBy, err = kernelUUIDPtr(dto.TransferApprovedBy); err != nil {
		return nil, err
	}
	if values.HandoverFrom, err = kernelUUIDPtr(dto.HandoverFrom); err != nil {
		return nil, err
	}
	if values.HandoverTo, err = kernelUUIDPtr(dto.HandoverTo); err != nil {
		return nil, err
	}
	if values.SortingApprovedBy, err = kernelUUIDPtr(dto.SortingApprovedBy); err != nil {
		return nil, err
	}
	if values.DestinationWarehouseID, err = kernelUUIDPtr(dto.DestinationWarehouseID); err != nil {
		return nil, err
	}

	if values.Roll1, err = rollFromColumns(dto.Roll1Weight, dto.Roll1Width, dto.Roll1Location); err != nil {
		return nil, err
	}
	if values.Roll2, err = rollFromColumns(dto.Roll2Weight, dto.Roll2Width, dto.Roll2Location); err != nil {
		return nil, err
	}

	return processing.RestoreRecord(values)
}

func rollFromColumns(weight, width *float64, location *string) (*processing.Roll, error) {
	if weight == nil {
		return nil, nil
	}

	w, err := kernel.NewWeight(*weight)
	if err != nil {
		return nil, err
	}

	roll := processing.Roll{Weight: w}
	if width != nil {
		roll.Width = *width
	}
	if location != nil {
		roll.Location = *location
	}
	return &roll, nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
