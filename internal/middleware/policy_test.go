package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielotieno/ledgerbook/internal/auth"
	"github.com/danielotieno/ledgerbook/internal/domain"
)

const testSecret = "test-jwt-secret"

type stubUserStore struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func (s *stubUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func seededStore(t *testing.T, role domain.Role) (*stubUserStore, *domain.User, string) {
	t.Helper()
	u := &domain.User{ID: uuid.New(), Email: "user@test.com", Role: role}
	token, err := auth.GenerateToken(u.ID, u.Email, testSecret, time.Hour)
	require.NoError(t, err)
	return &stubUserStore{users: map[uuid.UUID]*domain.User{u.ID: u}}, u, token
}

func navigate(t *testing.T, store roleResolver, token, path string) *httptest.ResponseRecorder {
	t.Helper()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()

	PagePolicy(testSecret, store)(okHandler).ServeHTTP(w, r)
	return w
}

func TestPagePolicy_AnonymousRedirectedToLogin(t *testing.T) {
	store := &stubUserStore{}

	w := navigate(t, store, "", "/admin")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPagePolicy_AnonymousAllowedOnPublicPaths(t *testing.T) {
	store := &stubUserStore{}

	for _, path := range []string{"/", "/login", "/signup", "/forgot-password"} {
		w := navigate(t, store, "", path)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestPagePolicy_UserAtLoginRedirectedToOwnRecord(t *testing.T) {
	store, u, token := seededStore(t, domain.RoleUser)

	w := navigate(t, store, token, "/login")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/transactions/"+u.ID.String(), w.Header().Get("Location"))
}

func TestPagePolicy_UserCannotViewOtherRecord(t *testing.T) {
	store, u, token := seededStore(t, domain.RoleUser)

	w := navigate(t, store, token, "/transactions/"+uuid.NewString())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/transactions/"+u.ID.String(), w.Header().Get("Location"))
}

func TestPagePolicy_AdminAllowedOnAdminAndRecords(t *testing.T) {
	store, _, token := seededStore(t, domain.RoleAdmin)

	for _, path := range []string{"/admin", "/dashboard", "/transactions/" + uuid.NewString()} {
		w := navigate(t, store, token, path)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestPagePolicy_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	store := &stubUserStore{}

	w := navigate(t, store, "not-a-token", "/dashboard")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPagePolicy_DeletedAccountTreatedAsAnonymous(t *testing.T) {
	store := &stubUserStore{users: map[uuid.UUID]*domain.User{}}
	token, err := auth.GenerateToken(uuid.New(), "gone@test.com", testSecret, time.Hour)
	require.NoError(t, err)

	w := navigate(t, store, token, "/dashboard")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

// A store failure during role lookup must degrade to non-admin, never admin.
func TestPagePolicy_RoleLookupFailureIsNotAdmin(t *testing.T) {
	uid := uuid.New()
	store := &stubUserStore{err: errors.New("store unavailable")}
	token, err := auth.GenerateToken(uid, "user@test.com", testSecret, time.Hour)
	require.NoError(t, err)

	w := navigate(t, store, token, "/admin")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/transactions/"+uid.String(), w.Header().Get("Location"))
}
