package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/internal/model"
)

// AuditRepository appends and reads the request audit trail.
type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	// List returns entries newest first; a nil companyID lists every company.
	List(ctx context.Context, companyID *uuid.UUID, page, limit int) ([]model.AuditLog, int64, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, companyID *uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	query := GetDB(ctx, r.db).Model(&model.AuditLog{})
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := GetDB(ctx, r.db).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
