package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:     patient.ID,
		UserID: patient.UserID,
		Name:   patient.Name,
		Age:    patient.Age,
		Gender: patient.Gender,
		Phone:  patient.Phone,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// PatientToRequest pre-fills an edit form from the stored patient.
func PatientToRequest(patient *dto.PatientResponse) dto.PatientRequest {
	return dto.PatientRequest{
		Name:   patient.Name,
		Age:    patient.Age,
		Gender: patient.Gender,
		Phone:  patient.Phone,
	}
}
