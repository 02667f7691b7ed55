package dto

// Request DTOs

type MedicalRecordRequest struct {
	Diagnosis    string `form:"diagnosis" validate:"required"`
	Prescription string `form:"prescription" validate:"required"`
}

// Response DTOs

type MedicalRecordResponse struct {
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
