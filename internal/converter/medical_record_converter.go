package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

func MedicalRecordDetailToResponse(detail *entity.MedicalRecordDetail) *dto.MedicalRecordResponse {
	if detail == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:            detail.ID,
		AppointmentID: detail.AppointmentID,
		Diagnosis:     detail.Diagnosis,
		Prescription:  detail.Prescription,
		Date:          detail.Date,
		Time:          detail.Time,
		DoctorID:      detail.DoctorID,
		DoctorName:    detail.DoctorName,
		PatientID:     detail.PatientID,
		PatientName:   detail.PatientName,
	}
}

func MedicalRecordDetailsToResponses(details []entity.MedicalRecordDetail) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(details))
	for i := range details {
		responses[i] = *MedicalRecordDetailToResponse(&details[i])
	}
	return responses
}
