package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// AppointmentDetailToResponse converts an AppointmentDetail row to AppointmentResponse DTO
func AppointmentDetailToResponse(detail *entity.AppointmentDetail) *dto.AppointmentResponse {
	if detail == nil {
		return nil
	}

	resp := &dto.AppointmentResponse{
		ID:             detail.ID,
		PatientID:      detail.PatientID,
		DoctorID:       detail.DoctorID,
		Date:           detail.Date,
		Time:           detail.Time,
		Status:         detail.Status,
		DoctorName:     detail.DoctorName,
		Specialization: detail.Specialization,
		PatientName:    detail.PatientName,
		HasRecord:      detail.HasRecord(),
	}
	if detail.RecordID != nil {
		resp.RecordID = *detail.RecordID
	}
	return resp
}

func AppointmentDetailsToResponses(details []entity.AppointmentDetail) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(details))
	for i := range details {
		responses[i] = *AppointmentDetailToResponse(&details[i])
	}
	return responses
}

// AppointmentToRequest pre-fills the edit form.
func AppointmentToRequest(appointment *dto.AppointmentResponse) dto.AppointmentRequest {
	return dto.AppointmentRequest{
		DoctorID: appointment.DoctorID,
		Date:     appointment.Date,
		Time:     appointment.Time,
	}
}
