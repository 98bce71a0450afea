// Package session owns the client's notion of "who is logged in". It wraps
// the persisted cache and the authority client behind a four-state machine
// and is the single source every authorization decision reads from.
package session

import (
	"context"
	"sync"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/models"
	"github.com/mkraev/costlens/internal/logging"
)

// State is the session lifecycle state. Modelling it as one enum (instead
// of a pair of booleans) keeps "restoring and redirecting" unrepresentable.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Store is the slice of the persisted cache the controller needs.
type Store interface {
	Load(ctx context.Context) (string, *models.User, error)
	Save(ctx context.Context, token string, user *models.User) error
	Clear(ctx context.Context) error
}

// Snapshot is an immutable view of the session for consumers (the gate,
// the scope resolver, the UI). User is nil unless State is
// StateAuthenticated.
type Snapshot struct {
	State State
	User  *models.User
}

// IsLoading is true only while the one-shot restoration is in flight.
// Login failures never re-enter the loading state.
func (s Snapshot) IsLoading() bool {
	return s.State == StateRestoring
}

// Controller is the session state machine.
//
// Transitions:
//
//	Uninitialized  -> Restoring        Restore, unconditionally on start
//	Restoring      -> Authenticated    cached pair present and verification succeeds
//	Restoring      -> Unauthenticated  cache absent, or verification fails (cache purged)
//	Unauthenticated-> Authenticated    Login succeeds
//	Authenticated  -> Unauthenticated  Logout (client-authoritative)
//
// There is no automatic transition out of Authenticated on token expiry;
// the next rejected request elsewhere surfaces the re-authentication need.
type Controller struct {
	client authority.Client
	store  Store
	log    logging.Logger

	restoreOnce sync.Once

	mu    sync.Mutex
	state State
	user  *models.User
	token string
}

func NewController(client authority.Client, store Store, log logging.Logger) *Controller {
	return &Controller{
		client: client,
		store:  store,
		log:    log,
		state:  StateUninitialized,
	}
}

// Snapshot returns the current state and user.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, User: c.user}
}

// CurrentUser returns the authenticated user, or nil.
func (c *Controller) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Token returns the live session token, or "".
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// IsLoading reports whether the restoration flow is still unresolved.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateRestoring
}

// Restore resolves the persisted session. It runs the underlying flow
// exactly once per process; later calls return immediately with the state
// already resolved.
//
// Every failure mode (empty cache, unreadable cache, network error,
// rejected token) resolves to StateUnauthenticated with the cache purged,
// and is not surfaced to the caller: an expired session is presented the
// same as never having logged in.
func (c *Controller) Restore(ctx context.Context) {
	c.restoreOnce.Do(func() {
		c.setState(StateRestoring, nil, "")

		token, user, err := c.store.Load(ctx)
		if err != nil || token == "" || user == nil {
			if err != nil {
				c.log.Warn(ctx, "failed to read session cache", "error", err)
				_ = c.store.Clear(ctx)
			}
			// No cached session: resolve without touching the network.
			c.setState(StateUnauthenticated, nil, "")
			return
		}

		c.client.SetToken(token)
		fresh, err := c.client.CurrentUser(ctx)
		if err != nil {
			c.log.Debug(ctx, "session verification failed", "error", err)
			c.client.SetToken("")
			_ = c.store.Clear(ctx)
			c.setState(StateUnauthenticated, nil, "")
			return
		}

		// The authority's record wins over the stale cached one.
		if err := c.store.Save(ctx, token, fresh); err != nil {
			c.log.Warn(ctx, "failed to refresh session cache", "error", err)
		}
		c.setState(StateAuthenticated, fresh, token)
		c.log.Info(ctx, "session restored", "user", fresh.Username, "admin", fresh.IsAdmin)
	})
}

// Login authenticates against the authority and commits the fresh token and
// user to memory and to the persisted cache. On failure the state is left
// untouched and the error is returned for inline presentation; a rejection
// matches authority.ErrInvalidCredentials and carries the authority's
// message verbatim.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	token, user, err := c.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.client.SetToken(token)
	if err := c.store.Save(ctx, token, user); err != nil {
		c.log.Warn(ctx, "failed to persist session", "error", err)
	}
	c.setState(StateAuthenticated, user, token)
	c.log.Info(ctx, "logged in", "user", user.Username, "admin", user.IsAdmin)
	return nil
}

// Logout ends the session. The server-side call is best-effort; local
// state and the persisted cache always clear, so calling Logout twice is
// the same as calling it once.
func (c *Controller) Logout(ctx context.Context) {
	if c.Token() != "" {
		if err := c.client.Logout(ctx); err != nil {
			c.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}

	c.client.SetToken("")
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear session cache", "error", err)
	}
	c.setState(StateUnauthenticated, nil, "")
}

func (c *Controller) setState(state State, user *models.User, token string) {
	c.mu.Lock()
	c.state = state
	c.user = user
	c.token = token
	c.mu.Unlock()
}
