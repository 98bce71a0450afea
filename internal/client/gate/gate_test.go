package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraev/costlens/internal/client/models"
	"github.com/mkraev/costlens/internal/client/session"
)

func snap(state session.State, user *models.User) session.Snapshot {
	return session.Snapshot{State: state, User: user}
}

var (
	member = &models.User{ID: 7, Username: "alice", IsAdmin: false}
	admin  = &models.User{ID: 1, Username: "root", IsAdmin: true}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		snap   session.Snapshot
		access Access
		want   Decision
	}{
		{"public always allows", snap(session.StateRestoring, nil), Public, Allow},
		{"restoring never redirects", snap(session.StateRestoring, nil), Authenticated, Wait},
		{"restoring never redirects admin route", snap(session.StateRestoring, nil), AdminOnly, Wait},
		{"uninitialized waits", snap(session.StateUninitialized, nil), Authenticated, Wait},
		{"unauthenticated goes to login", snap(session.StateUnauthenticated, nil), Authenticated, RedirectLogin},
		{"unauthenticated admin route goes to login", snap(session.StateUnauthenticated, nil), AdminOnly, RedirectLogin},
		{"member allowed on authenticated", snap(session.StateAuthenticated, member), Authenticated, Allow},
		{"member bounced from admin route", snap(session.StateAuthenticated, member), AdminOnly, RedirectRoot},
		{"admin allowed on admin route", snap(session.StateAuthenticated, admin), AdminOnly, Allow},
		{"admin allowed on authenticated", snap(session.StateAuthenticated, admin), Authenticated, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.snap, tt.access))
		})
	}
}

func TestDecideLogin(t *testing.T) {
	assert.Equal(t, Wait, DecideLogin(snap(session.StateRestoring, nil)))
	assert.Equal(t, Allow, DecideLogin(snap(session.StateUnauthenticated, nil)))
	// A resolved session redirects away from the login form.
	assert.Equal(t, RedirectRoot, DecideLogin(snap(session.StateAuthenticated, member)))
}

func TestLookup(t *testing.T) {
	require.Equal(t, AdminOnly, Lookup("/admin/activity").Access)
	require.Equal(t, Public, Lookup(LoginPath).Access)
	require.Equal(t, Authenticated, Lookup("/forecast").Access)

	// Unmatched paths fall back to the root route.
	fallback := Lookup("/no/such/page")
	require.Equal(t, RootPath, fallback.Path)
	require.Equal(t, Authenticated, fallback.Access)
}

func TestAdminPathsAreAdminOnly(t *testing.T) {
	for _, path := range []string{"/admin/accounts", "/admin/users", "/admin/activity"} {
		route := Lookup(path)
		assert.Equal(t, AdminOnly, route.Access, path)
		assert.Equal(t, RedirectRoot, Decide(snap(session.StateAuthenticated, member), route.Access), path)
		assert.Equal(t, Allow, Decide(snap(session.StateAuthenticated, admin), route.Access), path)
	}
}
