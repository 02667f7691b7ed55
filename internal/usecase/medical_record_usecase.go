package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrMedicalRecordExists   = errors.New("appointment already has a medical record")
)

type MedicalRecordUsecase interface {
	GetAppointmentForRecord(ctx context.Context, appointmentID uint) (*dto.AppointmentResponse, error)
	AddRecord(ctx context.Context, actor entity.Identity, appointmentID uint, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	GetRecord(ctx context.Context, id uint) (*dto.MedicalRecordResponse, error)
	UpdateRecord(ctx context.Context, actor entity.Identity, id uint, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	ListDoctorRecords(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.MedicalRecordResponse], error)
	ListPatientRecords(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.MedicalRecordResponse], error)
}

type medicalRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	apptRepo     repository.AppointmentRepository
	recordRepo   repository.MedicalRecordRepository
	auditService service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		apptRepo:     apptRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
	}
}

// GetAppointmentForRecord loads the appointment shown on the new-record form.
// Callers check HasRecord to send the doctor to the existing record instead.
func (u *medicalRecordUsecase) GetAppointmentForRecord(ctx context.Context, appointmentID uint) (*dto.AppointmentResponse, error) {
	detail, err := u.apptRepo.FindDetailByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentDetailToResponse(detail), nil
}

// AddRecord stores the record and completes the appointment in the same transaction.
func (u *medicalRecordUsecase) AddRecord(ctx context.Context, actor entity.Identity, appointmentID uint, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.apptRepo.FindByID(ctx, tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	existing, err := u.recordRepo.FindByAppointmentID(ctx, tx, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrMedicalRecordExists
	}

	record := &entity.MedicalRecord{
		AppointmentID: appointment.ID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
	}
	if err := u.recordRepo.Create(ctx, tx, record); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrMedicalRecordExists
		}
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	appointment.Complete()
	if err := u.apptRepo.UpdateStatus(ctx, tx, appointment.ID, appointment.Status); err != nil {
		u.log.Warnf("Failed to complete appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Added medical record for appointment %d", appointment.ID))

	return u.GetRecord(ctx, record.ID)
}

func (u *medicalRecordUsecase) GetRecord(ctx context.Context, id uint) (*dto.MedicalRecordResponse, error) {
	detail, err := u.recordRepo.FindDetailByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrMedicalRecordNotFound
	}
	return converter.MedicalRecordDetailToResponse(detail), nil
}

func (u *medicalRecordUsecase) UpdateRecord(ctx context.Context, actor entity.Identity, id uint, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	record.Diagnosis = req.Diagnosis
	record.Prescription = req.Prescription

	if err := u.recordRepo.Update(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to update medical record: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Updated medical record for appointment %d", record.AppointmentID))

	return u.GetRecord(ctx, record.ID)
}

func (u *medicalRecordUsecase) ListDoctorRecords(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.MedicalRecordResponse], error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileNotFound
	}

	details, total, err := u.recordRepo.FindDetailsByDoctorID(ctx, u.db, doctor.ID, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find doctor records: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.MedicalRecordDetailsToResponses(details), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}

func (u *medicalRecordUsecase) ListPatientRecords(ctx context.Context, actor entity.Identity, req dto.ListRequest) (*pagination.Page[dto.MedicalRecordResponse], error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}

	details, total, err := u.recordRepo.FindDetailsByPatientID(ctx, u.db, patient.ID, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.MedicalRecordDetailsToResponses(details), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}
