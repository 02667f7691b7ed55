package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(time.Minute)
	return NewManager(store, jwt.NewJWTService("test-secret", time.Hour), false, logrus.New()), store
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestManagerRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	s.SetIdentity(entity.Identity{UserID: 7, Username: "alice", Role: entity.RolePatient})
	s.AddFlash(FlashSuccess, "Welcome")

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(context.Background(), rec, s))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	loaded, err := m.Load(requestWithCookies(cookies))
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "alice", loaded.Identity.Username)
	assert.Equal(t, []Flash{{Category: FlashSuccess, Message: "Welcome"}}, loaded.PopFlashes())
	assert.Nil(t, loaded.PopFlashes())
}

func TestManagerSaveSkipsUnmodifiedSession(t *testing.T) {
	m, store := newTestManager(t)
	s := newSession()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(context.Background(), rec, s))

	assert.Empty(t, rec.Result().Cookies())
	got, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManagerLoadIgnoresForgedCookie(t *testing.T) {
	m, _ := newTestManager(t)
	other := jwt.NewJWTService("another-secret", time.Hour)
	token, err := other.GenerateSessionToken("stolen")
	require.NoError(t, err)

	s, err := m.Load(requestWithCookies([]*http.Cookie{{Name: CookieName, Value: token}}))
	require.NoError(t, err)
	assert.NotEqual(t, "stolen", s.ID)
	assert.False(t, s.IsAuthenticated())
}

func TestManagerRotateInvalidatesOldID(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s := newSession()
	s.AddFlash(FlashInfo, "hello")
	require.NoError(t, m.Save(ctx, httptest.NewRecorder(), s))
	oldID := s.ID

	require.NoError(t, m.Rotate(ctx, s))
	assert.NotEqual(t, oldID, s.ID)
	assert.True(t, s.Modified())

	gone, err := store.Get(ctx, oldID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestManagerDestroy(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s := newSession()
	s.SetIdentity(entity.Identity{UserID: 1, Username: "admin", Role: entity.RoleAdmin})
	require.NoError(t, m.Save(ctx, httptest.NewRecorder(), s))

	fresh, err := m.Destroy(ctx, s)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.False(t, fresh.IsAuthenticated())

	gone, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	s := newSession()
	s.AddFlash(FlashInfo, "one")
	require.NoError(t, store.Save(ctx, s, time.Minute))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	got.AddFlash(FlashInfo, "two")

	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, again.Flashes, 1)
}
