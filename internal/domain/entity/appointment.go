package entity

import "time"

// AppointmentStatus represents the two-state lifecycle of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
)

// DateLayout and TimeLayout are the storage and form formats of Appointment.Date and Appointment.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment between a patient and a doctor.
// Date is kept as an ISO string so lexical order equals calendar order on every dialect.
type Appointment struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint              `gorm:"not null;index" json:"doctor_id"`
	Date      string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Time      string            `gorm:"type:varchar(5)" json:"time"`
	Status    AppointmentStatus `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if appointment is still pending
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// Complete moves the appointment to Completed. There is no way back.
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

// StatusForDate returns the status a freshly booked appointment on date gets.
// Only the calendar day of both arguments counts.
func StatusForDate(date, today time.Time) AppointmentStatus {
	if date.Format(DateLayout) < today.Format(DateLayout) {
		return AppointmentStatusCompleted
	}
	return AppointmentStatusPending
}

// AppointmentDetail is an appointment joined with the names needed by list views.
type AppointmentDetail struct {
	ID             uint
	PatientID      uint
	DoctorID       uint
	Date           string
	Time           string
	Status         AppointmentStatus
	DoctorName     string
	Specialization string
	PatientName    string
	RecordID       *uint
}

// HasRecord reports whether a medical record exists for the appointment.
func (d AppointmentDetail) HasRecord() bool {
	return d.RecordID != nil
}
