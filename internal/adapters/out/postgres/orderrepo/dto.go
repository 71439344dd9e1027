// Package orderrepo implements order aggregate persistence over GORM,
// mapping between the domain model and the orders table.
package orderrepo

import (
	"time"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDTO represents the database row for one order aggregate. Stage and
// order type are stored as their numeric enum values; gorm.DeletedAt backs
// the administrative soft delete.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex"`
	OrderType   int
	Stage       int `gorm:"index"`

	RequiredWeight float64
	PricePerTon    float64
	CuttingFees    float64
	Discount       float64

	EstimatedPrice    *float64
	FinalPrice        *float64
	PricingCalculated bool

	CreatedAt   time.Time
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	Version   int
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                o.ID().Bytes(),
		OrderNumber:       o.OrderNumber(),
		OrderType:         int(o.OrderType()),
		Stage:             int(o.Stage()),
		RequiredWeight:    o.RequiredWeight().Kilograms(),
		PricePerTon:       o.PricePerTon(),
		CuttingFees:       o.CuttingFees(),
		Discount:          o.Discount(),
		EstimatedPrice:    o.EstimatedPrice(),
		FinalPrice:        o.FinalPrice(),
		PricingCalculated: o.PricingCalculated(),
		CreatedAt:         o.CreatedAt(),
		SubmittedAt:       o.SubmittedAt(),
		ApprovedAt:        o.ApprovedAt(),
		StartedAt:         o.StartedAt(),
		CompletedAt:       o.CompletedAt(),
		Version:           o.Version(),
	}
}

// toDomain reconstructs an order aggregate from its database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requiredWeight, err := kernel.NewWeight(dto.RequiredWeight)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.Type(dto.OrderType),
		order.Stage(dto.Stage),
		requiredWeight,
		dto.PricePerTon, dto.CuttingFees, dto.Discount,
		dto.EstimatedPrice, dto.FinalPrice,
		dto.PricingCalculated,
		dto.CreatedAt,
		dto.SubmittedAt, dto.ApprovedAt, dto.StartedAt, dto.CompletedAt,
		dto.Version,
	)
}
