package auditrepo

import (
	"context"

	"millflow/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditLogRepository implements ports.AuditLogRepository using GORM.
// Entries are immutable, so no aggregate tracking is needed.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GORM audit log repository.
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append persists a new audit entry.
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForSubject retrieves the entries describing one entity, oldest first.
func (r *GormAuditLogRepository) GetForSubject(
	ctx context.Context,
	subjectType, subjectID string,
) ([]*audit.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).Order("created_at").
		Find(&dtos, "subject_type = ? AND subject_id = ?", subjectType, subjectID).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
