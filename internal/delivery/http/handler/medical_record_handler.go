package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/validator"
)

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
	view          *view.Renderer
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator, view *view.Renderer) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
		view:          view,
	}
}

func (h *MedicalRecordHandler) ListDoctorRecords(w http.ResponseWriter, r *http.Request) {
	page, err := h.recordUsecase.ListDoctorRecords(r.Context(), currentIdentity(r), listRequest(r))
	if err != nil {
		h.recordError(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "doctor_records", map[string]any{"Page": page})
}

func (h *MedicalRecordHandler) ListPatientRecords(w http.ResponseWriter, r *http.Request) {
	page, err := h.recordUsecase.ListPatientRecords(r.Context(), currentIdentity(r), listRequest(r))
	if err != nil {
		h.recordError(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "patient_records", map[string]any{"Page": page})
}

// NewRecordPage shows the form for the appointment's first record. If one exists
// the doctor is sent to edit it instead.
func (h *MedicalRecordHandler) NewRecordPage(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.loadAppointment(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, http.StatusOK, "doctor_record_new", map[string]any{
		"Appointment": appointment,
		"Form":        &dto.MedicalRecordRequest{},
	})
}

// AddRecord stores the record; the usecase completes the appointment with it.
func (h *MedicalRecordHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.loadAppointment(w, r)
	if !ok {
		return
	}

	var req dto.MedicalRecordRequest
	if msg, ok := h.bind(r, &req); !ok {
		addFlash(r, session.FlashDanger, msg)
		h.view.Render(w, r, http.StatusUnprocessableEntity, "doctor_record_new", map[string]any{
			"Appointment": appointment,
			"Form":        &req,
		})
		return
	}

	if _, err := h.recordUsecase.AddRecord(r.Context(), currentIdentity(r), appointment.ID, &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrMedicalRecordExists):
			// Lost a race with another submission; loadAppointment redirects to the stored record.
			h.NewRecordPage(w, r)
		default:
			h.recordError(w, r, err)
		}
		return
	}

	addFlash(r, session.FlashSuccess, "Medical record added successfully")
	h.view.Redirect(w, r, "/doctor/appointments")
}

// loadAppointment resolves {appointment_id}. It writes the response itself and returns
// false when the page cannot be shown.
func (h *MedicalRecordHandler) loadAppointment(w http.ResponseWriter, r *http.Request) (*dto.AppointmentResponse, bool) {
	id, ok := pathID(r, "appointment_id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Appointment not found")
		return nil, false
	}

	appointment, err := h.recordUsecase.GetAppointmentForRecord(r.Context(), id)
	if err != nil {
		h.recordError(w, r, err)
		return nil, false
	}

	if appointment.HasRecord {
		addFlash(r, session.FlashWarning, "This appointment already has a medical record")
		h.view.Redirect(w, r, fmt.Sprintf("/doctor/record/edit/%d", appointment.RecordID))
		return nil, false
	}
	return appointment, true
}

func (h *MedicalRecordHandler) EditRecordPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Medical record not found")
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), id)
	if err != nil {
		h.recordError(w, r, err)
		return
	}

	h.view.Render(w, r, http.StatusOK, "doctor_record_edit", map[string]any{
		"Record": record,
		"Form":   &dto.MedicalRecordRequest{Diagnosis: record.Diagnosis, Prescription: record.Prescription},
	})
}

func (h *MedicalRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Medical record not found")
		return
	}

	var req dto.MedicalRecordRequest
	if msg, ok := h.bind(r, &req); !ok {
		record, err := h.recordUsecase.GetRecord(r.Context(), id)
		if err != nil {
			h.recordError(w, r, err)
			return
		}
		addFlash(r, session.FlashDanger, msg)
		h.view.Render(w, r, http.StatusUnprocessableEntity, "doctor_record_edit", map[string]any{
			"Record": record,
			"Form":   &req,
		})
		return
	}

	if _, err := h.recordUsecase.UpdateRecord(r.Context(), currentIdentity(r), id, &req); err != nil {
		h.recordError(w, r, err)
		return
	}

	addFlash(r, session.FlashSuccess, "Medical record updated successfully")
	h.view.Redirect(w, r, "/doctor/records")
}

func (h *MedicalRecordHandler) bind(r *http.Request, req *dto.MedicalRecordRequest) (string, bool) {
	if err := decodeForm(r, req); err != nil {
		return formErrorMessage(err), false
	}
	req.Diagnosis = strings.TrimSpace(req.Diagnosis)
	req.Prescription = strings.TrimSpace(req.Prescription)

	if err := h.validator.Validate(req); err != nil {
		return h.validator.FormatValidationMessage(err), false
	}
	return "", true
}

func (h *MedicalRecordHandler) recordError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, usecase.ErrMedicalRecordNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Medical record not found")
	case errors.Is(err, usecase.ErrDoctorProfileNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Doctor profile not found")
	case errors.Is(err, usecase.ErrPatientProfileNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Patient profile not found")
	default:
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
