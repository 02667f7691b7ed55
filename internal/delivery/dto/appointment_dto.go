package dto

import "go-hospital-management/internal/domain/entity"

// Request DTOs

// AppointmentRequest is checked by the usecase: date and time against today's date
// first, then the doctor.
type AppointmentRequest struct {
	DoctorID uint   `form:"doctor_id"`
	Date     string `form:"date"`
	Time     string `form:"time"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uint
	PatientID      uint
	DoctorID       uint
	Date           string
	Time           string
	Status         entity.AppointmentStatus
	DoctorName     string
	Specialization string
	PatientName    string
	RecordID       uint
	HasRecord      bool
}

func (a AppointmentResponse) IsPending() bool {
	return a.Status == entity.AppointmentStatusPending
}

type DashboardResponse struct {
	Today  string
	Stats  entity.DashboardStats
	Recent []AppointmentResponse
}
