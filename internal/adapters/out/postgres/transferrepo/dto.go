// Package transferrepo implements weight transfer persistence over GORM,
// mapping between the domain model and the weight_transfers table.
package transferrepo

import (
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/transfer"

	"github.com/google/uuid"
)

// TransferDTO represents the database row for one weight transfer. Stages
// and status are stored as their numeric enum values.
type TransferDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	FromStage int
	ToStage   int
	Weight    float64
	Status    int `gorm:"index"`

	RequestedBy uuid.UUID `gorm:"type:uuid"`
	RequestedAt time.Time

	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason string

	Version int
}

// TableName overrides GORM's default naming to use "weight_transfers".
func (TransferDTO) TableName() string {
	return "weight_transfers"
}

// fromDomain converts a transfer aggregate to its database representation.
func fromDomain(t *transfer.Transfer) TransferDTO {
	dto := TransferDTO{
		ID:              t.ID().Bytes(),
		OrderID:         t.OrderID().Bytes(),
		FromStage:       int(t.FromStage()),
		ToStage:         int(t.ToStage()),
		Weight:          t.Weight().Kilograms(),
		Status:          int(t.Status()),
		RequestedBy:     t.RequestedBy().Bytes(),
		RequestedAt:     t.RequestedAt(),
		ApprovedAt:      t.ApprovedAt(),
		RejectedAt:      t.RejectedAt(),
		RejectionReason: t.RejectionReason(),
		Version:         t.Version(),
	}

	if by := t.ApprovedBy(); by != nil {
		raw := by.Bytes()
		dto.ApprovedBy = &raw
	}
	if by := t.RejectedBy(); by != nil {
		raw := by.Bytes()
		dto.RejectedBy = &raw
	}

	return dto
}

// toDomain reconstructs a transfer aggregate from its database row.
func toDomain(dto TransferDTO) (*transfer.Transfer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	requestedBy, err := kernel.UUIDFromBytes(dto.RequestedBy[:])
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	var approvedBy, rejectedBy *kernel.UUID
	if dto.ApprovedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.ApprovedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		approvedBy = &by
	}
	if dto.RejectedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.RejectedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		rejectedBy = &by
	}

	return transfer.RestoreTransfer(
		id, orderID,
		order.Stage(dto.FromStage), order.Stage(dto.ToStage),
		weight,
		transfer.Status(dto.Status),
		requestedBy,
		dto.RequestedAt,
		approvedBy, dto.ApprovedAt,
		rejectedBy, dto.RejectedAt,
		dto.RejectionReason,
		dto.Version,
	)
}
