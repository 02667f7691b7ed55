package dto

// Request DTOs

type DoctorRequest struct {
	Name           string `form:"name" validate:"required,max=100"`
	Specialization string `form:"specialization" validate:"required,max=100"`
	Phone          string `form:"phone" validate:"required,max=20"`
}

type CreateDoctorRequest struct {
	Username string `form:"username" validate:"required,max=50"`
	Password string `form:"password" validate:"required,max=128"`
	DoctorRequest
}

// Response DTOs

type DoctorResponse struct {
	ID             uint
	UserID         uint
	Name           string
	Specialization string
	Phone          string
}
