package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecord, error)
	FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uint) (*entity.MedicalRecord, error)
	FindDetailByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecordDetail, error)
	FindDetailsByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint, filter entity.ListFilter) ([]entity.MedicalRecordDetail, int64, error)
	FindDetailsByPatientID(ctx context.Context, db *gorm.DB, patientID uint, filter entity.ListFilter) ([]entity.MedicalRecordDetail, int64, error)
	FindAllDetailsByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.MedicalRecordDetail, error)
	Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
}
