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
	ErrPatientNotFound        = errors.New("patient not found")
	ErrPatientProfileNotFound = errors.New("patient profile not found")
	ErrPatientHasAppointments = errors.New("patient has appointments or medical records")
)

type PatientUsecase interface {
	ListPatients(ctx context.Context, req dto.ListRequest) (*pagination.Page[dto.PatientResponse], error)
	GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error)
	GetPatientDetail(ctx context.Context, id uint) (*dto.PatientDetailResponse, error)
	GetProfile(ctx context.Context, actor entity.Identity) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, actor entity.Identity, id uint, req *dto.PatientRequest) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, actor entity.Identity, req *dto.PatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, actor entity.Identity, id uint) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	apptRepo     repository.AppointmentRepository
	recordRepo   repository.MedicalRecordRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		apptRepo:     apptRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) ListPatients(ctx context.Context, req dto.ListRequest) (*pagination.Page[dto.PatientResponse], error) {
	patients, total, err := u.patientRepo.FindPage(ctx, u.db, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.PatientsToResponses(patients), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

// GetPatientDetail returns the patient with every medical record, newest visit first.
func (u *patientUsecase) GetPatientDetail(ctx context.Context, id uint) (*dto.PatientDetailResponse, error) {
	patient, err := u.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindAllDetailsByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}

	return &dto.PatientDetailResponse{
		Patient: *patient,
		Records: converter.MedicalRecordDetailsToResponses(records),
	}, nil
}

func (u *patientUsecase) GetProfile(ctx context.Context, actor entity.Identity) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, actor entity.Identity, id uint, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.applyAndSave(ctx, tx, patient, req); err != nil {
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Updated patient %s", patient.Name))

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdateProfile(ctx context.Context, actor entity.Identity, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByUserID(ctx, tx, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}

	if err := u.applyAndSave(ctx, tx, patient, req); err != nil {
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, "Updated patient profile")

	return converter.PatientToResponse(patient), nil
}

// applyAndSave copies the form onto patient and commits tx.
func (u *patientUsecase) applyAndSave(ctx context.Context, tx *gorm.DB, patient *entity.Patient, req *dto.PatientRequest) error {
	patient.Name = req.Name
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.Phone = req.Phone

	if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, actor entity.Identity, id uint) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	count, err := u.apptRepo.CountByPatientID(ctx, tx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to count patient appointments: %+v", err)
		return nil, err
	}
	if count > 0 {
		return nil, ErrPatientHasAppointments
	}

	if err := u.patientRepo.Delete(ctx, tx, patient.ID); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return nil, err
	}
	if err := u.userRepo.Delete(ctx, tx, patient.UserID); err != nil {
		u.log.Warnf("Failed to delete patient user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Deleted patient %s", patient.Name))

	return converter.PatientToResponse(patient), nil
}
