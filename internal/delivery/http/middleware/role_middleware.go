package middleware

import (
	"net/http"

	"go-hospital-management/internal/domain/entity"
)

// RequireRole only lets users whose role equals role through. It must run after
// RequireLogin; anything else gets the 403 page and the handler never runs.
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentityFromContext(r.Context())
			if !ok {
				m.view.Redirect(w, r, "/")
				return
			}

			if identity.Role != role {
				m.view.Error(w, r, http.StatusForbidden, "You don't have permission to access this page")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only pages
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(entity.RoleAdmin)(next)
}

// RequireDoctor is a convenience middleware for doctor-only pages
func (m *AuthMiddleware) RequireDoctor(next http.Handler) http.Handler {
	return m.RequireRole(entity.RoleDoctor)(next)
}

// RequirePatient is a convenience middleware for patient-only pages
func (m *AuthMiddleware) RequirePatient(next http.Handler) http.Handler {
	return m.RequireRole(entity.RolePatient)(next)
}
