package handler

import (
	"context"
	"net/http"
	"time"

	"go-hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewHealthHandler(db *gorm.DB, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

// Health reports liveness plus a database ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.Warnf("Health check failed: %+v", err)
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable", map[string]string{"database": "down"})
		return
	}

	response.Success(w, http.StatusOK, "ok", map[string]string{"database": "up"})
}
