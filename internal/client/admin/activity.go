// Package admin implements the administrator-only session control plane:
// enumerating sessions and login history, resolving user names, and
// requesting revocations. All state here is a cache of the authority's
// truth and is only ever replaced wholesale by a fresh fetch.
package admin

import (
	"context"
	"strconv"
	"sync"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/models"
	"github.com/mkraev/costlens/internal/logging"
)

// HistoryLimit caps the login-history page at the most recent entries.
const HistoryLimit = 200

// ViewState is one consistent snapshot of the activity data for rendering.
type ViewState struct {
	Sessions []*models.SessionRecord
	History  []*models.LoginHistoryEntry
	Names    map[int64]string
	// Loaded flips true after the first successful refresh; until then the
	// UI shows a full loading indicator instead of an empty table.
	Loaded bool
}

// ActiveSessionCount counts the sessions still marked active.
func (v ViewState) ActiveSessionCount() int {
	n := 0
	for _, s := range v.Sessions {
		if s.IsActive {
			n++
		}
	}
	return n
}

// DisplayName resolves a user id to its username, falling back to the raw
// numeric id so an unknown id never fails the row render.
func (v ViewState) DisplayName(userID int64) string {
	if name, ok := v.Names[userID]; ok && name != "" {
		return name
	}
	return strconv.FormatInt(userID, 10)
}

// Activity fetches and caches the session-administration data.
//
// Refreshes are tagged with a generation number: only the latest issued
// refresh may commit its result, so a slow response can never overwrite
// the data of a newer one. Failed refreshes leave the previous data on
// screen untouched.
type Activity struct {
	client authority.Client
	log    logging.Logger

	mu       sync.Mutex
	gen      uint64
	sessions []*models.SessionRecord
	history  []*models.LoginHistoryEntry
	names    map[int64]string
	loaded   bool
}

func NewActivity(client authority.Client, log logging.Logger) *Activity {
	return &Activity{
		client: client,
		log:    log,
		names:  make(map[int64]string),
	}
}

// State returns the current view snapshot.
func (a *Activity) State() ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ViewState{
		Sessions: a.sessions,
		History:  a.history,
		Names:    a.names,
		Loaded:   a.loaded,
	}
}

// Refresh re-fetches sessions, login history, and the user-name map from
// the authority, optionally filtered to one user (0 = all users). The
// result is committed only if no newer refresh was issued meanwhile.
func (a *Activity) Refresh(ctx context.Context, filterUserID int64) error {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	filter := authority.SessionFilter{UserID: filterUserID}

	sessions, err := a.client.Sessions(ctx, filter)
	if err != nil {
		return err
	}

	filter.Limit = HistoryLimit
	history, err := a.client.LoginHistory(ctx, filter)
	if err != nil {
		return err
	}

	users, err := a.client.Users(ctx)
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		// A newer refresh was issued while this one was in flight.
		a.log.Debug(ctx, "discarding stale activity refresh", "gen", gen, "latest", a.gen)
		return nil
	}
	a.sessions = sessions
	a.history = history
	a.names = names
	a.loaded = true
	return nil
}

// RevokeSession asks the authority to deactivate one session, then
// re-fetches. Revocation may partially fail server-side, so there is no
// optimistic local mutation: the displayed state is always re-derived from
// the authority.
func (a *Activity) RevokeSession(ctx context.Context, sessionID, filterUserID int64) error {
	if err := a.client.RevokeSession(ctx, sessionID); err != nil {
		a.log.Warn(ctx, "session revocation failed", "session_id", sessionID, "error", err)
	}
	return a.Refresh(ctx, filterUserID)
}

// RevokeAll deactivates every active session of one user, then re-fetches.
func (a *Activity) RevokeAll(ctx context.Context, userID, filterUserID int64) error {
	if err := a.client.RevokeAllSessions(ctx, userID); err != nil {
		a.log.Warn(ctx, "bulk session revocation failed", "user_id", userID, "error", err)
	}
	return a.Refresh(ctx, filterUserID)
}
