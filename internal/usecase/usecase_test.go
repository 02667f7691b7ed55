package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/infrastructure/database"
	"go-hospital-management/internal/repository"
	"go-hospital-management/internal/service"
	"go-hospital-management/pkg/metrics"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedNow is the clock of every usecase under test.
var fixedNow = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db  *gorm.DB
	ctx context.Context

	auditRepo domainRepo.AuditLogRepository
	apptRepo  domainRepo.AppointmentRepository

	auth      AuthUsecase
	doctors   DoctorUsecase
	patients  PatientUsecase
	appts     AppointmentUsecase
	records   MedicalRecordUsecase
	audit     AuditLogUsecase
	dashboard DashboardUsecase

	clock *time.Time
	admin entity.Identity
}

func newFixture(t *testing.T) *fixture {
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

	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	apptRepo := repository.NewAppointmentRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(db, log, metrics.New("test"), auditRepo)

	clock := fixedNow
	now := func() time.Time { return clock }

	f := &fixture{
		db:        db,
		ctx:       context.Background(),
		auditRepo: auditRepo,
		apptRepo:  apptRepo,
		auth:      NewAuthUsecase(db, log, userRepo, patientRepo, auditService),
		doctors:   NewDoctorUsecase(db, log, userRepo, doctorRepo, apptRepo, auditService),
		patients:  NewPatientUsecase(db, log, userRepo, patientRepo, apptRepo, recordRepo, auditService),
		appts:     NewAppointmentUsecase(db, log, patientRepo, doctorRepo, apptRepo, recordRepo, auditService, now),
		records:   NewMedicalRecordUsecase(db, log, doctorRepo, patientRepo, apptRepo, recordRepo, auditService),
		audit:     NewAuditLogUsecase(db, log, auditRepo),
		dashboard: NewDashboardUsecase(db, log, doctorRepo, patientRepo, apptRepo, now),
		clock:     &clock,
	}

	hash, err := service.HashPassword("admin123")
	require.NoError(t, err)
	admin := &entity.User{Username: "admin", Password: hash, Role: entity.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)
	f.admin = entity.Identity{UserID: admin.ID, Username: admin.Username, Role: admin.Role}

	return f
}

func (f *fixture) auditCount(t *testing.T) int64 {
	t.Helper()
	n, err := f.auditRepo.Count(f.ctx, f.db)
	require.NoError(t, err)
	return n
}

func (f *fixture) createDoctor(t *testing.T, username, name string) *dto.DoctorResponse {
	t.Helper()
	doctor, err := f.doctors.CreateDoctor(f.ctx, f.admin, &dto.CreateDoctorRequest{
		Username: username,
		Password: "123",
		DoctorRequest: dto.DoctorRequest{
			Name:           name,
			Specialization: "Cardiology",
			Phone:          "1234567890",
		},
	})
	require.NoError(t, err)
	return doctor
}

func (f *fixture) doctorIdentity(t *testing.T, doctor *dto.DoctorResponse) entity.Identity {
	t.Helper()
	var user entity.User
	require.NoError(t, f.db.First(&user, doctor.UserID).Error)
	return entity.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func (f *fixture) registerPatient(t *testing.T, username, name string) entity.Identity {
	t.Helper()
	identity, err := f.auth.RegisterPatient(f.ctx, &dto.RegisterPatientRequest{
		Username: username,
		Password: "123",
		PatientRequest: dto.PatientRequest{
			Name:   name,
			Age:    30,
			Gender: entity.GenderFemale,
			Phone:  "555",
		},
	})
	require.NoError(t, err)
	return *identity
}

func (f *fixture) book(t *testing.T, patient entity.Identity, doctorID uint, date, clock string) *dto.AppointmentResponse {
	t.Helper()
	appt, err := f.appts.BookAppointment(f.ctx, patient, &dto.AppointmentRequest{DoctorID: doctorID, Date: date, Time: clock})
	require.NoError(t, err)
	return appt
}
