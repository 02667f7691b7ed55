package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindPage(ctx context.Context, db *gorm.DB, filter entity.ListFilter) ([]entity.AuditLog, int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	DeleteAll(ctx context.Context, db *gorm.DB) (int64, error)
}
