package handler

import (
	"errors"
	"net/http"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/validator"
)

// PatientHandler serves patient pages for all three roles: admin management,
// the doctor's patient search and the patient's own profile.
type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
	view           *view.Renderer
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator, view *view.Renderer) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
		view:           view,
	}
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "admin_patients")
}

// SearchPatients is the doctor's patient search; it accepts the term by GET or POST.
func (h *PatientHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "doctor_patients")
}

func (h *PatientHandler) renderList(w http.ResponseWriter, r *http.Request, name string) {
	page, err := h.patientUsecase.ListPatients(r.Context(), listRequest(r))
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.view.Render(w, r, http.StatusOK, name, map[string]any{"Page": page})
}

func (h *PatientHandler) GetPatientDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Patient not found")
		return
	}

	detail, err := h.patientUsecase.GetPatientDetail(r.Context(), id)
	if err != nil {
		h.patientError(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "doctor_patient", map[string]any{"Detail": detail})
}

func (h *PatientHandler) EditPatientPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Patient not found")
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), id)
	if err != nil {
		h.patientError(w, r, err)
		return
	}

	form := converter.PatientToRequest(patient)
	h.view.Render(w, r, http.StatusOK, "admin_patient_edit", map[string]any{"ID": id, "Form": &form})
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Patient not found")
		return
	}

	var req dto.PatientRequest
	if msg, ok := h.bind(r, &req); !ok {
		h.renderInvalid(w, r, "admin_patient_edit", map[string]any{"ID": id, "Form": &req}, msg)
		return
	}

	if _, err := h.patientUsecase.UpdatePatient(r.Context(), currentIdentity(r), id, &req); err != nil {
		h.patientError(w, r, err)
		return
	}

	addFlash(r, session.FlashSuccess, "Patient updated successfully.")
	h.view.Redirect(w, r, "/admin/patients")
}

// DeletePatient removes the patient and its login. Patients with appointments are kept.
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Patient not found")
		return
	}

	if _, err := h.patientUsecase.DeletePatient(r.Context(), currentIdentity(r), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientHasAppointments):
			addFlash(r, session.FlashWarning, "Cannot delete patient because they have appointments or medical records.")
			h.view.Redirect(w, r, "/admin/patients")
		default:
			h.patientError(w, r, err)
		}
		return
	}

	addFlash(r, session.FlashSuccess, "Patient deleted successfully")
	h.view.Redirect(w, r, "/admin/patients")
}

func (h *PatientHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetProfile(r.Context(), currentIdentity(r))
	if err != nil {
		h.patientError(w, r, err)
		return
	}

	form := converter.PatientToRequest(patient)
	h.view.Render(w, r, http.StatusOK, "patient_profile", map[string]any{"Form": &form})
}

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if msg, ok := h.bind(r, &req); !ok {
		h.renderInvalid(w, r, "patient_profile", map[string]any{"Form": &req}, msg)
		return
	}

	if _, err := h.patientUsecase.UpdateProfile(r.Context(), currentIdentity(r), &req); err != nil {
		h.patientError(w, r, err)
		return
	}

	addFlash(r, session.FlashSuccess, "Profile updated successfully")
	h.view.Redirect(w, r, "/patient/index")
}

// bind decodes, normalizes and validates a patient form. On failure it returns the
// message to flash.
func (h *PatientHandler) bind(r *http.Request, req *dto.PatientRequest) (string, bool) {
	if err := decodePatientForm(r, req); err != nil {
		return formErrorMessage(err), false
	}
	req.Normalize()

	if err := h.validator.Validate(req); err != nil {
		return h.validator.FormatValidationMessage(err), false
	}
	return "", true
}

func (h *PatientHandler) renderInvalid(w http.ResponseWriter, r *http.Request, name string, data map[string]any, message string) {
	addFlash(r, session.FlashDanger, message)
	h.view.Render(w, r, http.StatusUnprocessableEntity, name, data)
}

func (h *PatientHandler) patientError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Patient not found")
	case errors.Is(err, usecase.ErrPatientProfileNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Patient profile not found")
	default:
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
