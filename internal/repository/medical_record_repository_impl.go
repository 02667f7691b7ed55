package repository

import (
	"context"
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

const medicalRecordDetailColumns = "medical_records.id, medical_records.appointment_id, " +
	"medical_records.diagnosis, medical_records.prescription, " +
	"appointments.date, appointments.time, " +
	"doctors.id AS doctor_id, doctors.name AS doctor_name, " +
	"patients.id AS patient_id, patients.name AS patient_name"

const medicalRecordDetailOrder = "appointments.date DESC, appointments.time DESC, medical_records.id DESC"

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) detailQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("medical_records").
		Joins("JOIN appointments ON appointments.id = medical_records.appointment_id").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Joins("JOIN patients ON patients.id = appointments.patient_id")
}

func (r *medicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uint) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindDetailByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecordDetail, error) {
	var details []entity.MedicalRecordDetail
	err := r.detailQuery(ctx, db).
		Select(medicalRecordDetailColumns).
		Where("medical_records.id = ?", id).
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return &details[0], nil
}

func (r *medicalRecordRepository) FindDetailsByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint, filter entity.ListFilter) ([]entity.MedicalRecordDetail, int64, error) {
	return r.findDetailPage(ctx, db, "appointments.doctor_id = ?", doctorID, filter, "patients.name", "medical_records.diagnosis")
}

func (r *medicalRecordRepository) FindDetailsByPatientID(ctx context.Context, db *gorm.DB, patientID uint, filter entity.ListFilter) ([]entity.MedicalRecordDetail, int64, error) {
	return r.findDetailPage(ctx, db, "appointments.patient_id = ?", patientID, filter, "doctors.name", "medical_records.diagnosis")
}

func (r *medicalRecordRepository) findDetailPage(ctx context.Context, db *gorm.DB, owner string, ownerID uint, filter entity.ListFilter, searchColumns ...string) ([]entity.MedicalRecordDetail, int64, error) {
	var details []entity.MedicalRecordDetail
	var total int64

	search := searchScope(filter.Search, searchColumns...)

	if err := r.detailQuery(ctx, db).Where(owner, ownerID).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.detailQuery(ctx, db).
		Select(medicalRecordDetailColumns).
		Where(owner, ownerID).
		Scopes(search, paginateScope(filter)).
		Order(medicalRecordDetailOrder).
		Scan(&details).Error
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

func (r *medicalRecordRepository) FindAllDetailsByPatientID(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.MedicalRecordDetail, error) {
	var details []entity.MedicalRecordDetail
	err := r.detailQuery(ctx, db).
		Select(medicalRecordDetailColumns).
		Where("appointments.patient_id = ?", patientID).
		Order(medicalRecordDetailOrder).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Save(record).Error
}
