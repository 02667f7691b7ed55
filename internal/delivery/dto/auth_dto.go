package dto

// Request DTOs

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterPatientRequest struct {
	Username string `form:"username" validate:"required,max=50"`
	Password string `form:"password" validate:"required,max=128"`
	PatientRequest
}
