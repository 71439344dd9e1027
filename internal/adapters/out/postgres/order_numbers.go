package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const orderNumberPrefix = "ORD"

// GormOrderNumberGenerator issues human-readable order numbers of the form
// ORD-20260901-0003, sequential within each day. Soft-deleted orders keep
// their numbers, so the scan runs unscoped and a restored order never
// collides with a later one.
type GormOrderNumberGenerator struct {
	db *gorm.DB
}

// NewGormOrderNumberGenerator creates an order number generator backed by
// the orders table.
func NewGormOrderNumberGenerator(db *gorm.DB) *GormOrderNumberGenerator {
	return &GormOrderNumberGenerator{db: db}
}

// Next returns the next free order number for today. Uniqueness is enforced
// by the unique index on orders.order_number; a rare same-instant race
// surfaces there as a constraint violation and the caller retries.
func (g *GormOrderNumberGenerator) Next(ctx context.Context) (string, error) {
	day := time.Now().UTC().Format("20060102")
	prefix := fmt.Sprintf("%s-%s-", orderNumberPrefix, day)

	var last string
	err := g.db.WithContext(ctx).
		Table("orders").Unscoped().
		Where("order_number LIKE ?", prefix+"%").
		Select("COALESCE(MAX(order_number), '')").
		Row().Scan(&last)
	if err != nil {
		return "", err
	}

	sequence := 1
	if last != "" {
		suffix := strings.TrimPrefix(last, prefix)
		parsed, parseErr := strconv.Atoi(suffix)
		if parseErr != nil {
			return "", fmt.Errorf("malformed order number %q: %w", last, parseErr)
		}
		sequence = parsed + 1
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}
