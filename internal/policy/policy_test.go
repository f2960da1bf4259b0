package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/danielotieno/ledgerbook/internal/domain"
)

func anon() *Principal { return nil }

func user(uid uuid.UUID) *Principal {
	return &Principal{UID: uid, Role: domain.RoleUser}
}

func admin(uid uuid.UUID) *Principal {
	return &Principal{UID: uid, Role: domain.RoleAdmin}
}

func TestDecide_Anonymous(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Decision
	}{
		{"landing page allowed", "/", Decision{Action: ActionAllow}},
		{"login allowed", "/login", Decision{Action: ActionAllow}},
		{"signup allowed", "/signup", Decision{Action: ActionAllow}},
		{"forgot password allowed", "/forgot-password", Decision{Action: ActionAllow}},
		{"dashboard redirects to login", "/dashboard", Decision{Action: ActionRedirect, Location: "/login"}},
		{"admin redirects to login", "/admin", Decision{Action: ActionRedirect, Location: "/login"}},
		{"transactions redirect to login", "/transactions/" + uuid.NewString(), Decision{Action: ActionRedirect, Location: "/login"}},
		{"unknown path redirects to login", "/settings", Decision{Action: ActionRedirect, Location: "/login"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(anon(), tc.path))
		})
	}
}

func TestDecide_AuthenticatedOnEntryPaths(t *testing.T) {
	uid := uuid.New()
	adminUID := uuid.New()

	for _, path := range []string{"/", "/login", "/signup", "/forgot-password"} {
		t.Run("user at "+path, func(t *testing.T) {
			got := Decide(user(uid), path)
			assert.Equal(t, ActionRedirect, got.Action)
			assert.Equal(t, "/transactions/"+uid.String(), got.Location)
		})
		t.Run("admin at "+path, func(t *testing.T) {
			got := Decide(admin(adminUID), path)
			assert.Equal(t, ActionRedirect, got.Action)
			assert.Equal(t, "/admin", got.Location)
		})
	}
}

func TestDecide_Admin(t *testing.T) {
	p := admin(uuid.New())
	other := uuid.New()

	tests := []struct {
		name string
		path string
		want Decision
	}{
		{"admin console", "/admin", Decision{Action: ActionAllow}},
		{"admin subpath", "/admin/users", Decision{Action: ActionAllow}},
		{"dashboard", "/dashboard", Decision{Action: ActionAllow}},
		{"own transactions", "/transactions/" + p.UID.String(), Decision{Action: ActionAllow}},
		{"any user's transactions", "/transactions/" + other.String(), Decision{Action: ActionAllow}},
		{"unknown path redirects home", "/settings", Decision{Action: ActionRedirect, Location: "/admin"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(p, tc.path))
		})
	}
}

func TestDecide_User(t *testing.T) {
	uid := uuid.New()
	p := user(uid)
	own := "/transactions/" + uid.String()
	other := uuid.New()

	tests := []struct {
		name string
		path string
		want Decision
	}{
		{"own transactions allowed", own, Decision{Action: ActionAllow}},
		{"dashboard allowed", "/dashboard", Decision{Action: ActionAllow}},
		{"other user's transactions redirect to own", "/transactions/" + other.String(), Decision{Action: ActionRedirect, Location: own}},
		{"admin area redirects to own", "/admin", Decision{Action: ActionRedirect, Location: own}},
		{"admin subpath redirects to own", "/admin/users", Decision{Action: ActionRedirect, Location: own}},
		{"malformed transactions path redirects to own", "/transactions/not-a-uuid", Decision{Action: ActionRedirect, Location: own}},
		{"unknown path redirects to own", "/settings", Decision{Action: ActionRedirect, Location: own}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(p, tc.path))
		})
	}
}

func TestDecide_RolePending(t *testing.T) {
	p := &Principal{UID: uuid.New(), RolePending: true}

	for _, path := range []string{"/", "/login", "/dashboard", "/admin", "/settings"} {
		got := Decide(p, path)
		assert.Equal(t, ActionPending, got.Action, "path %s", path)
		assert.Empty(t, got.Location, "pending must not carry a redirect")
	}
}

// A failed role lookup yields an empty role, which must behave as non-admin.
func TestDecide_UnresolvedRoleIsNotAdmin(t *testing.T) {
	uid := uuid.New()
	p := &Principal{UID: uid, Role: ""}

	got := Decide(p, "/admin")
	assert.Equal(t, ActionRedirect, got.Action)
	assert.Equal(t, "/transactions/"+uid.String(), got.Location)

	assert.Equal(t, ActionAllow, Decide(p, "/transactions/"+uid.String()).Action)
}

func TestHomePath(t *testing.T) {
	uid := uuid.New()
	assert.Equal(t, "/admin", HomePath(admin(uid)))
	assert.Equal(t, "/transactions/"+uid.String(), HomePath(user(uid)))
}
