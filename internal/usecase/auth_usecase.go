package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*entity.Identity, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Identity, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// Login never tells an unknown username apart from a wrong password.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*entity.Identity, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.db, strings.TrimSpace(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	hash := ""
	if user != nil {
		hash = user.Password
	}
	if !service.CheckPassword(hash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return &entity.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// RegisterPatient creates the user and its patient profile together.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Identity, error) {
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
		return nil, ErrUsernameTaken
	}

	user := &entity.User{
		Username: username,
		Password: hashedPassword,
		Role:     entity.RolePatient,
	}
	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		UserID: user.ID,
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		Phone:  req.Phone,
	}
	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	identity := &entity.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
	_ = u.auditService.LogAction(ctx, identity, fmt.Sprintf("Registered patient %s", patient.Name))

	return identity, nil
}
