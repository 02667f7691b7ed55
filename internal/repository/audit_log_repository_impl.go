package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) FindPage(ctx context.Context, db *gorm.DB, filter entity.ListFilter) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	search := searchScope(filter.Search, "action", "username")

	if err := db.WithContext(ctx).Model(&entity.AuditLog{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.WithContext(ctx).
		Scopes(search, paginateScope(filter)).
		Order("audit_logs.timestamp DESC, audit_logs.id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *auditLogRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.AuditLog{}).Count(&total).Error
	return total, err
}

// DeleteAll removes every audit entry and returns how many were removed.
func (r *auditLogRepository) DeleteAll(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.AuditLog{})
	return result.RowsAffected, result.Error
}
