package service

import (
	"context"
	"strings"
	"time"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	// LogAction records description on behalf of actor, or of "System" when actor is nil.
	LogAction(ctx context.Context, actor *entity.Identity, description string) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	metrics   *metrics.Metrics
	auditRepo repository.AuditLogRepository
	now       func() time.Time
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, m *metrics.Metrics, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		metrics:   m,
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

// LogAction writes outside of any caller transaction: the triggering change is already
// committed, and a failed audit write is reported to the caller but never undoes it.
func (s *auditService) LogAction(ctx context.Context, actor *entity.Identity, description string) error {
	auditLog := &entity.AuditLog{
		Username:  entity.SystemActor,
		Action:    strings.TrimSpace(description),
		Timestamp: s.now().UTC(),
	}

	if actor != nil && !actor.IsZero() {
		userID := actor.UserID
		role := actor.Role
		auditLog.UserID = &userID
		auditLog.Username = actor.Username
		auditLog.Role = &role
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.WithField("action", auditLog.Action).Warnf("Failed to create audit log: %+v", err)
		s.count("error")
		return err
	}

	s.count("ok")
	return nil
}

func (s *auditService) count(status string) {
	if s.metrics != nil {
		s.metrics.AuditWrites.WithLabelValues(status).Inc()
	}
}
