package handler

import (
	"net/http"

	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/usecase"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	view             *view.Renderer
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, view *view.Renderer) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		view:             view,
	}
}

// Index sends each role to its landing page.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	switch currentIdentity(r).Role {
	case entity.RoleAdmin:
		h.view.Redirect(w, r, "/admin/index")
	case entity.RoleDoctor:
		h.view.Redirect(w, r, "/doctor/appointments")
	case entity.RolePatient:
		h.view.Redirect(w, r, "/patient/index")
	default:
		h.view.Error(w, r, http.StatusForbidden, "Invalid role")
	}
}

func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUsecase.GetDashboard(r.Context())
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_index", dashboard)
}
