package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"
	"go-hospital-management/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentNotOwned  = errors.New("appointment belongs to another patient")
	ErrAppointmentHasRecord = errors.New("appointment has a medical record")
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, actor entity.Identity, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	ListPatientAppointments(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.AppointmentResponse], error)
	GetPatientAppointment(ctx context.Context, actor entity.Identity, id uint) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, actor entity.Identity, id uint, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actor entity.Identity, id uint) error
	ListDoctorAppointments(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.AppointmentResponse], error)
	Today() string
}

type appointmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	apptRepo     repository.AppointmentRepository
	recordRepo   repository.MedicalRecordRepository
	auditService service.AuditService
	now          func() time.Time
}

// NewAppointmentUsecase builds the usecase. now defaults to time.Now.
func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	apptRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
	now func() time.Time,
) AppointmentUsecase {
	if now == nil {
		now = time.Now
	}
	return &appointmentUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		apptRepo:     apptRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
		now:          now,
	}
}

// Today is the minimum date offered by the booking forms.
func (u *appointmentUsecase) Today() string {
	return service.Today(u.now())
}

func (u *appointmentUsecase) currentPatient(ctx context.Context, db *gorm.DB, actor entity.Identity) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}
	return patient, nil
}

func (u *appointmentUsecase) detail(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	detail, err := u.apptRepo.FindDetailByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentDetailToResponse(detail), nil
}

// BookAppointment books for the logged-in patient. A date before today is stored as
// Completed; ValidateAppointment already refuses those for form input.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, actor entity.Identity, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.currentPatient(ctx, u.db, actor)
	if err != nil {
		return nil, err
	}

	now := u.now()
	slot, err := service.ValidateAppointment(req.Date, req.Time, now)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(ctx, tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      slot.Date,
		Time:      slot.Time,
		Status:    entity.StatusForDate(slot.Day, now),
	}
	if err := u.apptRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Booked appointment for patient %s", patient.Name))

	return u.detail(ctx, appointment.ID)
}

// ListPatientAppointments first completes the patient's past Pending appointments,
// then lists them newest first.
func (u *appointmentUsecase) ListPatientAppointments(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.AppointmentResponse], error) {
	patient, err := u.currentPatient(ctx, u.db, actor)
	if err != nil {
		return nil, err
	}

	if _, err := u.ReconcilePastAppointments(ctx, patient.ID); err != nil {
		return nil, err
	}

	details, total, err := u.apptRepo.FindDetailsByPatientID(ctx, u.db, patient.ID, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find patient appointments: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.AppointmentDetailsToResponses(details), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}

// ReconcilePastAppointments moves Pending appointments dated before today to Completed.
func (u *appointmentUsecase) ReconcilePastAppointments(ctx context.Context, patientID uint) (int64, error) {
	n, err := u.apptRepo.CompletePastPending(ctx, u.db, patientID, u.Today())
	if err != nil {
		u.log.Warnf("Failed to complete past appointments: %+v", err)
		return 0, err
	}
	if n > 0 {
		u.log.WithField("patient_id", patientID).Infof("Completed %d past appointments", n)
	}
	return n, nil
}

func (u *appointmentUsecase) GetPatientAppointment(ctx context.Context, actor entity.Identity, id uint) (*dto.AppointmentResponse, error) {
	patient, err := u.currentPatient(ctx, u.db, actor)
	if err != nil {
		return nil, err
	}

	appointment, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != patient.ID {
		return nil, ErrAppointmentNotOwned
	}
	return appointment, nil
}

// UpdateAppointment lets the owner move the appointment or switch doctor. The status is kept.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, actor entity.Identity, id uint, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.currentPatient(ctx, u.db, actor)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.apptRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patient.ID {
		return nil, ErrAppointmentNotOwned
	}

	slot, err := service.ValidateAppointment(req.Date, req.Time, u.now())
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment.Date = slot.Date
	appointment.Time = slot.Time
	appointment.DoctorID = doctor.ID

	if err := u.apptRepo.Update(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Updated appointment %d for patient %s", appointment.ID, patient.Name))

	return u.detail(ctx, appointment.ID)
}

// CancelAppointment deletes the owner's appointment unless a medical record exists.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actor entity.Identity, id uint) error {
	patient, err := u.currentPatient(ctx, u.db, actor)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.apptRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patient.ID {
		return ErrAppointmentNotOwned
	}

	record, err := u.recordRepo.FindByAppointmentID(ctx, tx, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return err
	}
	if record != nil {
		return ErrAppointmentHasRecord
	}

	if err := u.apptRepo.Delete(ctx, tx, appointment.ID); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Canceled appointment %d", appointment.ID))

	return nil
}

func (u *appointmentUsecase) ListDoctorAppointments(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.AppointmentResponse], error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileNotFound
	}

	details, total, err := u.apptRepo.FindDetailsByDoctorID(ctx, u.db, doctor.ID, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.AppointmentDetailsToResponses(details), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}
