package handler

import (
	"fmt"
	"net/http"

	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/usecase"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	view            *view.Renderer
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, view *view.Renderer) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		view:            view,
	}
}

func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, err := h.auditLogUsecase.ListAuditLogs(r.Context(), listRequest(r))
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_audit", map[string]any{"Page": page})
}

func (h *AuditLogHandler) ClearAuditLogPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "admin_clear_audit_log", nil)
}

// ClearAuditLogs is the only mutation whose storage error is shown to the user.
func (h *AuditLogHandler) ClearAuditLogs(w http.ResponseWriter, r *http.Request) {
	if _, err := h.auditLogUsecase.ClearAuditLogs(r.Context(), currentIdentity(r)); err != nil {
		addFlash(r, session.FlashDanger, fmt.Sprintf("An error occurred while clearing the audit log: %v", err))
		h.view.Redirect(w, r, "/admin/audit")
		return
	}

	addFlash(r, session.FlashSuccess, "Audit log has been cleared successfully")
	h.view.Redirect(w, r, "/admin/audit")
}
