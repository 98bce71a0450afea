package authority

import (
	"context"

	"github.com/mkraev/costlens/internal/client/models"
)

// SessionFilter narrows session and login-history queries. A zero UserID
// means "all users". Limit applies to login history only; zero means the
// server default.
type SessionFilter struct {
	UserID int64
	Limit  int
}

// Client is the API contract with the identity/session authority. It is the
// only path through which the client learns about users, sessions, and
// login history; none of those records are ever mutated locally.
type Client interface {
	Close() error

	// Login exchanges credentials for an opaque token and the authoritative
	// user record. Rejections surface as *InvalidCredentialsError.
	Login(ctx context.Context, username, password string) (string, *models.User, error)

	// Logout invalidates the current server-side session. Best-effort: the
	// caller clears local state regardless of the outcome.
	Logout(ctx context.Context) error

	// CurrentUser verifies the held token and returns the authoritative,
	// possibly updated user record. ErrUnauthorized means the token is
	// missing, expired, or revoked.
	CurrentUser(ctx context.Context) (*models.User, error)

	// SetToken installs the token carried on subsequent requests.
	SetToken(token string)

	// Accounts lists the managed accounts visible to the caller. Non-admin
	// callers may receive ErrScopeDenied.
	Accounts(ctx context.Context) ([]*models.Account, error)

	// Users lists all users for id -> name resolution. Admin only.
	Users(ctx context.Context) ([]*models.User, error)

	// Sessions enumerates session records, optionally filtered by user.
	Sessions(ctx context.Context, filter SessionFilter) ([]*models.SessionRecord, error)

	// LoginHistory returns the most recent login attempts, newest first.
	LoginHistory(ctx context.Context, filter SessionFilter) ([]*models.LoginHistoryEntry, error)

	// RevokeSession flips one session record to inactive.
	RevokeSession(ctx context.Context, sessionID int64) error

	// RevokeAllSessions deactivates every active session of one user.
	RevokeAllSessions(ctx context.Context, userID int64) error
}
