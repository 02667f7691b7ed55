package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error)
	FindDetailByID(ctx context.Context, db *gorm.DB, id uint) (*entity.AppointmentDetail, error)
	FindDetailsByPatientID(ctx context.Context, db *gorm.DB, patientID uint, filter entity.ListFilter) ([]entity.AppointmentDetail, int64, error)
	FindDetailsByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint, filter entity.ListFilter) ([]entity.AppointmentDetail, int64, error)
	FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.AppointmentDetail, error)
	CountByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint) (int64, error)
	CountByPatientID(ctx context.Context, db *gorm.DB, patientID uint) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, status entity.AppointmentStatus) (int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id uint, status entity.AppointmentStatus) error
	// CompletePastPending flips the patient's Pending appointments dated before today to Completed.
	CompletePastPending(ctx context.Context, db *gorm.DB, patientID uint, today string) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uint) error
}
