package usecase

import (
	"context"
	"time"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentAppointmentsLimit = 5

// dashboardDateLayout renders e.g. "Tuesday, June 10".
const dashboardDateLayout = "Monday, January 02"

type DashboardUsecase interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
	now         func() time.Time
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	now func() time.Time,
) DashboardUsecase {
	if now == nil {
		now = time.Now
	}
	return &dashboardUsecase{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		now:         now,
	}
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var stats entity.DashboardStats
	var err error

	if stats.Doctors, err = u.doctorRepo.Count(ctx, u.db); err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	if stats.Patients, err = u.patientRepo.Count(ctx, u.db); err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	if stats.Appointments, err = u.apptRepo.Count(ctx, u.db); err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}
	if stats.Completed, err = u.apptRepo.CountByStatus(ctx, u.db, entity.AppointmentStatusCompleted); err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, err
	}
	stats.Pending = stats.Appointments - stats.Completed

	recent, err := u.apptRepo.FindRecent(ctx, u.db, recentAppointmentsLimit)
	if err != nil {
		u.log.Warnf("Failed to find recent appointments: %+v", err)
		return nil, err
	}

	return &dto.DashboardResponse{
		Today:  u.now().Format(dashboardDateLayout),
		Stats:  stats,
		Recent: converter.AppointmentDetailsToResponses(recent),
	}, nil
}
