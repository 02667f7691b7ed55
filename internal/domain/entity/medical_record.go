package entity

// MedicalRecord is the outcome of one appointment
type MedicalRecord struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint   `gorm:"not null;uniqueIndex" json:"appointment_id"`
	Diagnosis     string `gorm:"type:text;not null" json:"diagnosis"`
	Prescription  string `gorm:"type:text;not null" json:"prescription"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// MedicalRecordDetail is a record joined with its appointment, doctor and patient.
type MedicalRecordDetail struct {
	ID            uint
	AppointmentID uint
	Diagnosis     string
	Prescription  string
	Date          string
	Time          string
	DoctorID      uint
	DoctorName    string
	PatientID     uint
	PatientName   string
}
