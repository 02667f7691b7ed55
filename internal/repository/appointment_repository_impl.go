package repository

import (
	"context"
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

const appointmentDetailColumns = "appointments.id, appointments.patient_id, appointments.doctor_id, " +
	"appointments.date, appointments.time, appointments.status, " +
	"doctors.name AS doctor_name, doctors.specialization AS specialization, " +
	"patients.name AS patient_name, medical_records.id AS record_id"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// detailQuery joins an appointment with its doctor, patient and optional record.
func (r *appointmentRepository) detailQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("appointments").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("LEFT JOIN medical_records ON medical_records.appointment_id = appointments.id")
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindDetailByID(ctx context.Context, db *gorm.DB, id uint) (*entity.AppointmentDetail, error) {
	var details []entity.AppointmentDetail
	err := r.detailQuery(ctx, db).
		Select(appointmentDetailColumns).
		Where("appointments.id = ?", id).
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

func (r *appointmentRepository) FindDetailsByPatientID(ctx context.Context, db *gorm.DB, patientID uint, filter entity.ListFilter) ([]entity.AppointmentDetail, int64, error) {
	return r.findDetailPage(ctx, db, "appointments.patient_id = ?", patientID, filter, "doctors.name")
}

func (r *appointmentRepository) FindDetailsByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint, filter entity.ListFilter) ([]entity.AppointmentDetail, int64, error) {
	return r.findDetailPage(ctx, db, "appointments.doctor_id = ?", doctorID, filter, "patients.name")
}

func (r *appointmentRepository) findDetailPage(ctx context.Context, db *gorm.DB, owner string, ownerID uint, filter entity.ListFilter, searchColumn string) ([]entity.AppointmentDetail, int64, error) {
	var details []entity.AppointmentDetail
	var total int64

	search := searchScope(filter.Search, searchColumn)

	if err := r.detailQuery(ctx, db).Where(owner, ownerID).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.detailQuery(ctx, db).
		Select(appointmentDetailColumns).
		Where(owner, ownerID).
		Scopes(search, paginateScope(filter)).
		Order("appointments.date DESC, appointments.time DESC, appointments.id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

func (r *appointmentRepository) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.AppointmentDetail, error) {
	var details []entity.AppointmentDetail
	err := r.detailQuery(ctx, db).
		Select(appointmentDetailColumns).
		Order("appointments.date DESC, appointments.time DESC, appointments.id DESC").
		Limit(limit).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *appointmentRepository) CountByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).Where("doctor_id = ?", doctorID).Count(&total).Error
	return total, err
}

func (r *appointmentRepository) CountByPatientID(ctx context.Context, db *gorm.DB, patientID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).Where("patient_id = ?", patientID).Count(&total).Error
	return total, err
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, db *gorm.DB, status entity.AppointmentStatus) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *appointmentRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).Count(&total).Error
	return total, err
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uint, status entity.AppointmentStatus) error {
	return db.WithContext(ctx).Model(&entity.Appointment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *appointmentRepository) CompletePastPending(ctx context.Context, db *gorm.DB, patientID uint, today string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("patient_id = ? AND status = ? AND date < ?", patientID, entity.AppointmentStatusPending, today).
		Update("status", entity.AppointmentStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{}).Error
}
