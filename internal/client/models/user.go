// Package models defines the read-only projections of authority-owned
// records used by the client: users, sessions, login history, and managed
// accounts. JSON tags follow the platform API wire format.
package models

import "time"

// User is the authority's user record as returned by login and /auth/me.
// The client never mutates it; a refreshed copy replaces the cached one
// after every successful verification.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	IsAdmin       bool      `json:"is_admin"`
	IsActive      bool      `json:"is_active"`
	LoginAttempts int       `json:"login_attempts"`
	CreatedAt     time.Time `json:"created_at"`
	AccountIDs    []int64   `json:"account_ids"`
}

// HasAccount reports whether the given managed account is part of the
// user's scope. Order of AccountIDs is not significant.
func (u *User) HasAccount(accountID int64) bool {
	for _, id := range u.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}
