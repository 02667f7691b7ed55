package service

import (
	"context"
	"io"
	"testing"
	"time"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/infrastructure/database"
	"go-hospital-management/internal/repository"
	"go-hospital-management/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, *logrus.Logger) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.NewInMemory(log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, log
}

func TestValidateAppointment(t *testing.T) {
	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date     string
		time     string
		wantDate string
		wantErr  error
	}{
		{name: "garbage date", date: "10/06/2025", time: "09:00", wantErr: ErrInvalidDate},
		{name: "impossible date", date: "2025-02-30", time: "09:00", wantErr: ErrInvalidDate},
		{name: "past date", date: "2000-01-01", time: "09:00", wantErr: ErrPastDate},
		{name: "past date wins over bad time", date: "2025-06-09", time: "nope", wantErr: ErrPastDate},
		{name: "bad time", date: "2025-06-11", time: "25:00", wantErr: ErrInvalidTime},
		{name: "today", date: "2025-06-10", time: "08:00"},
		{name: "future", date: "2099-01-01", time: "09:00"},
		{name: "unpadded date", date: "2099-1-5", time: "09:00", wantDate: "2099-01-05"},
		{name: "unpadded past date", date: "2025-6-9", time: "09:00", wantErr: ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := ValidateAppointment(tt.date, tt.time, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			want := tt.wantDate
			if want == "" {
				want = tt.date
			}
			assert.Equal(t, want, slot.Date)
			assert.Equal(t, tt.time, slot.Time)
		})
	}
}

func TestValidateAppointmentFlagsToday(t *testing.T) {
	today := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)

	slot, err := ValidateAppointment("2025-06-10", "09:15", today)
	require.NoError(t, err)
	assert.True(t, slot.IsToday)

	slot, err = ValidateAppointment("2025-06-11", "09:15", today)
	require.NoError(t, err)
	assert.False(t, slot.IsToday)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "s3cret"))
}

func TestAuditServiceLogAction(t *testing.T) {
	db, log := newTestDB(t)
	m := metrics.New("test")
	auditRepo := repository.NewAuditLogRepository()
	svc := NewAuditService(db, log, m, auditRepo)
	ctx := context.Background()

	require.NoError(t, db.Create(&entity.User{ID: 1, Username: "admin", Password: "x", Role: entity.RoleAdmin}).Error)

	actor := &entity.Identity{UserID: 1, Username: "admin", Role: entity.RoleAdmin}
	require.NoError(t, svc.LogAction(ctx, actor, "  Deleted doctor Dr. Who  "))
	require.NoError(t, svc.LogAction(ctx, nil, "Nightly cleanup"))

	logs, total, err := auditRepo.FindPage(ctx, db, entity.ListFilter{Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	byAction := map[string]entity.AuditLog{}
	for _, l := range logs {
		byAction[l.Action] = l
	}

	admin := byAction["Deleted doctor Dr. Who"]
	require.NotNil(t, admin.UserID)
	assert.EqualValues(t, 1, *admin.UserID)
	assert.Equal(t, "admin", admin.Username)
	require.NotNil(t, admin.Role)
	assert.Equal(t, entity.RoleAdmin, *admin.Role)

	system := byAction["Nightly cleanup"]
	assert.Nil(t, system.UserID)
	assert.Nil(t, system.Role)
	assert.Equal(t, entity.SystemActor, system.Username)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuditWrites.WithLabelValues("ok")))
}

func TestAuditServiceReportsFailure(t *testing.T) {
	db, log := newTestDB(t)
	m := metrics.New("test")
	svc := NewAuditService(db, log, m, repository.NewAuditLogRepository())

	require.NoError(t, db.Migrator().DropTable(&entity.AuditLog{}))

	err := svc.LogAction(context.Background(), nil, "lost")
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditWrites.WithLabelValues("error")))
}

func TestSeedIsIdempotent(t *testing.T) {
	db, log := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository()
	apptRepo := repository.NewAppointmentRepository()
	seeder := NewSeedService(db, log,
		userRepo,
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		apptRepo,
		repository.NewMedicalRecordRepository(),
	)

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	var users int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	assert.EqualValues(t, 5, users)

	appointments, err := apptRepo.Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, appointments)

	completed, err := apptRepo.CountByStatus(ctx, db, entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 2, completed)

	admin, err := userRepo.FindByUsername(ctx, db, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, CheckPassword(admin.Password, "admin123"))
}
