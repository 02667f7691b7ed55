package middleware

import (
	"context"
	"net/http"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const IdentityKey contextKey = "identity"

type SessionMiddleware struct {
	manager *session.Manager
	log     *logrus.Logger
}

func NewSessionMiddleware(manager *session.Manager, log *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		manager: manager,
		log:     log,
	}
}

// Load attaches the request's session to the context. Every route runs behind it so
// flashes and the logged-in user are available to the templates.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.manager.Load(r)
		if err != nil {
			m.log.Errorf("Failed to load session: %+v", err)
			response.Plain(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
	})
}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext extracts the authenticated user set by RequireLogin.
func GetIdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(entity.Identity)
	return identity, ok
}
