package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/validator"
)

// DoctorHandler serves the admin's doctor management pages.
type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
	view          *view.Renderer
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator, view *view.Renderer) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
		view:          view,
	}
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	page, err := h.doctorUsecase.ListDoctors(r.Context(), listRequest(r))
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_doctors", map[string]any{"Page": page})
}

func (h *DoctorHandler) NewDoctorPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "admin_doctor_new", map[string]any{"Form": &dto.CreateDoctorRequest{}})
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := decodeForm(r, &req); err != nil {
		h.renderNew(w, r, &req, formErrorMessage(err))
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := h.validator.Validate(&req); err != nil {
		h.renderNew(w, r, &req, h.validator.FormatValidationMessage(err))
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), currentIdentity(r), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorUsernameTaken):
			h.renderNew(w, r, &req, fmt.Sprintf("Doctor with username '%s' already exists", req.Username))
		default:
			h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	addFlash(r, session.FlashSuccess, fmt.Sprintf("Doctor '%s' added successfully", doctor.Name))
	h.view.Redirect(w, r, "/admin/doctors")
}

func (h *DoctorHandler) renderNew(w http.ResponseWriter, r *http.Request, req *dto.CreateDoctorRequest, message string) {
	addFlash(r, session.FlashDanger, message)
	h.view.Render(w, r, http.StatusUnprocessableEntity, "admin_doctor_new", map[string]any{"Form": req})
}

func (h *DoctorHandler) EditDoctorPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Doctor not found")
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		h.doctorError(w, r, err)
		return
	}

	form := converter.DoctorToRequest(doctor)
	h.view.Render(w, r, http.StatusOK, "admin_doctor_edit", map[string]any{"ID": id, "Form": &form})
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Doctor not found")
		return
	}

	var req dto.DoctorRequest
	if err := decodeForm(r, &req); err != nil {
		h.renderEdit(w, r, id, &req, formErrorMessage(err))
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.renderEdit(w, r, id, &req, h.validator.FormatValidationMessage(err))
		return
	}

	if _, err := h.doctorUsecase.UpdateDoctor(r.Context(), currentIdentity(r), id, &req); err != nil {
		h.doctorError(w, r, err)
		return
	}

	addFlash(r, session.FlashSuccess, "Doctor updated successfully")
	h.view.Redirect(w, r, "/admin/doctors")
}

func (h *DoctorHandler) renderEdit(w http.ResponseWriter, r *http.Request, id uint, req *dto.DoctorRequest, message string) {
	addFlash(r, session.FlashDanger, message)
	h.view.Render(w, r, http.StatusUnprocessableEntity, "admin_doctor_edit", map[string]any{"ID": id, "Form": req})
}

// DeleteDoctor removes the doctor and its login. Doctors with appointments are kept.
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.view.Error(w, r, http.StatusNotFound, "Doctor not found")
		return
	}

	if _, err := h.doctorUsecase.DeleteDoctor(r.Context(), currentIdentity(r), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorHasAppointments):
			addFlash(r, session.FlashWarning, "Cannot delete doctor because they have appointments or medical records.")
			h.view.Redirect(w, r, "/admin/doctors")
		default:
			h.doctorError(w, r, err)
		}
		return
	}

	addFlash(r, session.FlashSuccess, "Doctor deleted successfully")
	h.view.Redirect(w, r, "/admin/doctors")
}

func (h *DoctorHandler) doctorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		h.view.Error(w, r, http.StatusNotFound, "Doctor not found")
	default:
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
