package usecase

import (
	"context"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, req dto.ListRequest) (*pagination.Page[dto.AuditLogResponse], error)
	ClearAuditLogs(ctx context.Context, actor entity.Identity) (int64, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, req dto.ListRequest) (*pagination.Page[dto.AuditLogResponse], error) {
	logs, total, err := u.auditLogRepo.FindPage(ctx, u.db, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.AuditLogsToResponses(logs), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}

// ClearAuditLogs empties the audit trail. The clearing itself is not audited.
func (u *auditLogUsecase) ClearAuditLogs(ctx context.Context, actor entity.Identity) (int64, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	removed, err := u.auditLogRepo.DeleteAll(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to clear audit logs: %+v", err)
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}

	u.log.WithFields(logrus.Fields{"user": actor.Username, "removed": removed}).Info("Audit log cleared")
	return removed, nil
}
