package session

import (
	"context"
	"time"

	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

// Flash categories understood by the templates.
const (
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashSuccess = "success"
	FlashInfo    = "info"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side state behind the session cookie.
type Session struct {
	ID        string          `json:"id"`
	Identity  entity.Identity `json:"identity"`
	Flashes   []Flash         `json:"flashes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	dirty bool
}

func newSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// IsAuthenticated reports whether a user is logged in on this session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && !s.Identity.IsZero()
}

// SetIdentity stores the logged-in user.
func (s *Session) SetIdentity(identity entity.Identity) {
	s.Identity = identity
	s.dirty = true
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns the pending flashes and clears them.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return flashes
}

// Modified reports whether the session changed since it was loaded.
func (s *Session) Modified() bool {
	return s.dirty
}

func (s *Session) clone() *Session {
	c := *s
	c.Flashes = append([]Flash(nil), s.Flashes...)
	c.dirty = false
	return &c
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by NewContext, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
