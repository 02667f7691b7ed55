package middleware

import (
	"net/http"

	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/session"
)

type AuthMiddleware struct {
	view *view.Renderer
}

func NewAuthMiddleware(view *view.Renderer) *AuthMiddleware {
	return &AuthMiddleware{
		view: view,
	}
}

// RequireLogin sends anonymous visitors to the login page and puts the
// session's identity into the request context for everyone else.
func (m *AuthMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		if !s.IsAuthenticated() {
			m.view.Redirect(w, r, "/")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), s.Identity)))
	})
}
