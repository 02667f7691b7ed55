package handler

import (
	"errors"
	"net/http"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/service"
	"go-hospital-management/internal/usecase"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	doctorUsecase      usecase.DoctorUsecase
	view               *view.Renderer
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	doctorUsecase usecase.DoctorUsecase,
	view *view.Renderer,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		doctorUsecase:      doctorUsecase,
		view:               view,
	}
}

// formData is what the book and edit forms need besides the appointment itself.
func (h *AppointmentHandler) formData(r *http.Request, form *dto.AppointmentRequest) (map[string]any, error) {
	doctors, err := h.doctorUsecase.ListAllDoctors(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"Doctors": doctors,
		"Form":    form,
		"Today":   h.appointmentUsecase.Today(),
	}, nil
}

func (h *AppointmentHandler) BookPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.formData(r, &dto.AppointmentRequest{})
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.view.Render(w, r, http.StatusOK, "patient_book", data)
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if msg, ok := h.bind(r, &req); !ok {
		h.renderBookInvalid(w, r, &req, msg)
		return
	}

	if _, err := h.appointmentUsecase.BookAppointment(r.Context(), currentIdentity(r), &req); err != nil {
		switch {
		case service.IsValidationError(err):
			h.renderBookInvalid(w, r, &req, err.Error())
		case errors.Is(err, usecase.ErrDoctorNotFound):
			h.renderBookInvalid(w, r, &req, "Please select a doctor")
		default:
			h.appointmentError(w, r, err)
		}
		return
	}

	addFlash(r, session.FlashSuccess, "Appointment booked successfully")
	h.view.Redirect(w, r, "/patient/appointments")
}

func (h *AppointmentHandler) renderBookInvalid(w http.ResponseWriter, r *http.Request, req *dto.AppointmentRequest, message string) {
	data, err := h.formData(r, req)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	addFlash(r, session.FlashDanger, message)
	h.view.Render(w, r, http.StatusUnprocessableEntity, "patient_book", data)
}

// ListPatientAppointments shows the patient's appointments. Past Pending ones are
// completed by the usecase before listing.
func (h *AppointmentHandler) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	page, err := h.appointmentUsecase.ListPatientAppointments(r.Context(), currentIdentity(r), listRequest(r))
	if err != nil {
		h.appointmentError(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "patient_appointments", map[string]any{"Page": page})
}

func (h *AppointmentHandler) EditAppointmentPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Appointment not found")
		return
	}

	appointment, err := h.appointmentUsecase.GetPatientAppointment(r.Context(), currentIdentity(r), id)
	if err != nil {
		h.appointmentError(w, r, err)
		return
	}

	form := converter.AppointmentToRequest(appointment)
	h.renderEdit(w, r, http.StatusOK, appointment, &form)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Appointment not found")
		return
	}

	identity := currentIdentity(r)
	var req dto.AppointmentRequest
	msg, valid := h.bind(r, &req)
	if valid {
		_, err := h.appointmentUsecase.UpdateAppointment(r.Context(), identity, id, &req)
		switch {
		case err == nil:
			addFlash(r, session.FlashSuccess, "Appointment updated successfully")
			h.view.Redirect(w, r, "/patient/appointments")
			return
		case service.IsValidationError(err):
			msg = err.Error()
		case errors.Is(err, usecase.ErrDoctorNotFound):
			msg = "Please select a doctor"
		default:
			h.appointmentError(w, r, err)
			return
		}
	}

	// Re-render only for the owner; this also answers 404/403 for a bad id.
	appointment, err := h.appointmentUsecase.GetPatientAppointment(r.Context(), identity, id)
	if err != nil {
		h.appointmentError(w, r, err)
		return
	}
	addFlash(r, session.FlashDanger, msg)
	h.renderEdit(w, r, http.StatusUnprocessableEntity, appointment, &req)
}

func (h *AppointmentHandler) renderEdit(w http.ResponseWriter, r *http.Request, status int, appointment *dto.AppointmentResponse, form *dto.AppointmentRequest) {
	data, err := h.formData(r, form)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	data["Appointment"] = appointment
	h.view.Render(w, r, status, "patient_appointment_edit", data)
}

// CancelAppointment deletes the patient's own appointment unless it already has a record.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Appointment not found")
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), currentIdentity(r), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentHasRecord):
			addFlash(r, session.FlashWarning, "Cannot cancel this appointment because it has a medical record")
			h.view.Redirect(w, r, "/patient/appointments")
		default:
			h.appointmentError(w, r, err)
		}
		return
	}

	addFlash(r, session.FlashSuccess, "Appointment canceled successfully")
	h.view.Redirect(w, r, "/patient/appointments")
}

func (h *AppointmentHandler) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	identity := currentIdentity(r)
	doctor, err := h.doctorUsecase.GetDoctorByUser(r.Context(), identity)
	if err != nil {
		h.appointmentError(w, r, err)
		return
	}

	page, err := h.appointmentUsecase.ListDoctorAppointments(r.Context(), identity, listRequest(r))
	if err != nil {
		h.appointmentError(w, r, err)
		return
	}
	h.view.Render(w, r, http.StatusOK, "doctor_appointments", map[string]any{"Doctor": doctor, "Page": page})
}

// bind only decodes the form. A missing doctor surfaces from the usecase as
// ErrDoctorNotFound, after the date and time checks.
func (h *AppointmentHandler) bind(r *http.Request, req *dto.AppointmentRequest) (string, bool) {
	if err := decodeForm(r, req); err != nil {
		return formErrorMessage(err), false
	}
	return "", true
}

func (h *AppointmentHandler) appointmentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, usecase.ErrAppointmentNotOwned):
		h.view.Error(w, r, http.StatusForbidden, "You can only manage your own appointments")
	case errors.Is(err, usecase.ErrPatientProfileNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Patient profile not found")
	case errors.Is(err, usecase.ErrDoctorProfileNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Doctor profile not found")
	default:
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
