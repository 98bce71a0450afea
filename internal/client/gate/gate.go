// Package gate decides whether the current session may enter a view. It is
// a UX convenience layered over the authority's own enforcement: hiding a
// view here never substitutes for the server-side role and scope checks.
package gate

import "github.com/mkraev/costlens/internal/client/session"

// Access is the level a route demands.
type Access int

const (
	// Public routes always render.
	Public Access = iota
	// Authenticated routes require a resolved user.
	Authenticated
	// AdminOnly routes additionally require the administrator role.
	AdminOnly
)

// Decision is the gate's verdict for one navigation attempt.
type Decision int

const (
	// Wait: restoration is unresolved; render a neutral placeholder and
	// make no redirect decision yet.
	Wait Decision = iota
	// Allow: render the view.
	Allow
	// RedirectLogin: no user; send to the login entry point.
	RedirectLogin
	// RedirectRoot: user present but lacks the required role; send to the
	// application root.
	RedirectRoot
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectRoot:
		return "redirect-root"
	default:
		return "unknown"
	}
}

// Decide gates one route against the session snapshot.
//
// Invariant: while the session is still restoring no redirect is ever
// issued, only Wait; otherwise a token restore in flight would flash a
// redirect to login.
func Decide(snap session.Snapshot, access Access) Decision {
	if access == Public {
		return Allow
	}
	if snap.IsLoading() || snap.State == session.StateUninitialized {
		return Wait
	}
	if snap.User == nil {
		return RedirectLogin
	}
	if access == AdminOnly && !snap.User.IsAdmin {
		return RedirectRoot
	}
	return Allow
}

// DecideLogin gates the login entry point, which is polymorphic in the
// opposite direction: a resolved session redirects away from the form so a
// logged-in user never re-sees it.
func DecideLogin(snap session.Snapshot) Decision {
	if snap.IsLoading() || snap.State == session.StateUninitialized {
		return Wait
	}
	if snap.User != nil {
		return RedirectRoot
	}
	return Allow
}
