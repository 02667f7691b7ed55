package session

import (
	"context"
	"net/http"
	"time"

	"go-hospital-management/pkg/jwt"

	"github.com/sirupsen/logrus"
)

const CookieName = "hospital_session"

// Manager ties the signed session cookie to a Store.
type Manager struct {
	store  Store
	tokens *jwt.JWTService
	ttl    time.Duration
	secure bool
	log    *logrus.Logger
}

func NewManager(store Store, tokens *jwt.JWTService, secure bool, log *logrus.Logger) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		ttl:    tokens.GetTTL(),
		secure: secure,
		log:    log,
	}
}

// Load returns the session referenced by the request cookie. A missing, forged or expired
// cookie yields a fresh anonymous session; only a store failure is an error.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return newSession(), nil
	}

	claims, err := m.tokens.ValidateToken(cookie.Value)
	if err != nil {
		m.log.Debugf("Discarding session cookie: %v", err)
		return newSession(), nil
	}

	s, err := m.store.Get(r.Context(), claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return newSession(), nil
	}
	return s, nil
}

// Save persists s when it changed and (re)issues the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.Modified() {
		return nil
	}

	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return err
	}

	token, err := m.tokens.GenerateSessionToken(s.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.dirty = false
	return nil
}

// Rotate moves s to a new id and drops the old record. Call it on login.
func (m *Manager) Rotate(ctx context.Context, s *Session) error {
	oldID := s.ID
	s.ID = newSession().ID
	s.dirty = true
	return m.store.Delete(ctx, oldID)
}

// Destroy deletes s and returns a fresh anonymous session to continue the request with.
func (m *Manager) Destroy(ctx context.Context, s *Session) (*Session, error) {
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return newSession(), err
	}
	return newSession(), nil
}
