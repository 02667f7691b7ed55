package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

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
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorProfileNotFound = errors.New("doctor profile not found")
	ErrDoctorUsernameTaken   = errors.New("doctor username already exists")
	ErrDoctorHasAppointments = errors.New("doctor has appointments or medical records")
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, req dto.ListRequest) (*pagination.Page[dto.DoctorResponse], error)
	ListAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uint) (*dto.DoctorResponse, error)
	GetDoctorByUser(ctx context.Context, actor entity.Identity) (*dto.DoctorResponse, error)
	CreateDoctor(ctx context.Context, actor entity.Identity, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, actor entity.Identity, id uint, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actor entity.Identity, id uint) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	apptRepo     repository.AppointmentRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	apptRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		apptRepo:     apptRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, req dto.ListRequest) (*pagination.Page[dto.DoctorResponse], error) {
	doctors, total, err := u.doctorRepo.FindPage(ctx, u.db, req.Filter())
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	page := pagination.New(converter.DoctorsToResponses(doctors), req.Page, pagination.DefaultPerPage, total)
	return &page, nil
}

func (u *doctorUsecase) ListAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uint) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctorByUser(ctx context.Context, actor entity.Identity) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

// CreateDoctor creates the login and the doctor profile in one transaction.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, actor entity.Identity, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	username := strings.TrimSpace(req.Username)

	hashedPassword, err := service.HashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByUsername(ctx, tx, username)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorUsernameTaken
	}

	user := &entity.User{
		Username: username,
		Password: hashedPassword,
		Role:     entity.RoleDoctor,
	}
	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDoctorUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		UserID:         user.ID,
		Name:           strings.TrimSpace(req.Name),
		Specialization: strings.TrimSpace(req.Specialization),
		Phone:          strings.TrimSpace(req.Phone),
	}
	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Added new doctor %s", doctor.Name))

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, actor entity.Identity, id uint, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	doctor.Name = strings.TrimSpace(req.Name)
	doctor.Specialization = strings.TrimSpace(req.Specialization)
	doctor.Phone = strings.TrimSpace(req.Phone)

	if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Edited doctor %s", doctor.Name))

	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor removes the doctor and its login. Doctors with any appointment are kept;
// a medical record always hangs off an appointment, so counting appointments covers both.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, actor entity.Identity, id uint) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	count, err := u.apptRepo.CountByDoctorID(ctx, tx, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to count doctor appointments: %+v", err)
		return nil, err
	}
	if count > 0 {
		return nil, ErrDoctorHasAppointments
	}

	if err := u.doctorRepo.Delete(ctx, tx, doctor.ID); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return nil, err
	}
	if err := u.userRepo.Delete(ctx, tx, doctor.UserID); err != nil {
		u.log.Warnf("Failed to delete doctor user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, &actor, fmt.Sprintf("Deleted doctor %s", doctor.Name))

	return converter.DoctorToResponse(doctor), nil
}
