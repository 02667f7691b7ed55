package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		Phone:          doctor.Phone,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorToRequest pre-fills the edit form from the stored doctor.
func DoctorToRequest(doctor *dto.DoctorResponse) dto.DoctorRequest {
	return dto.DoctorRequest{
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		Phone:          doctor.Phone,
	}
}
