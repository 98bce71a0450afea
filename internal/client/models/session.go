package models

import "time"

// SessionRecord is the administrative view of one login session. Records
// are created by the authority on login; the client only ever requests
// revocation and re-reads.
type SessionRecord struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	IPAddress    string    `json:"ip_address"`
	Browser      string    `json:"browser"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// DurationMinutes derives the session duration in whole minutes from
// last_activity - created_at. A last_activity earlier than created_at is a
// data anomaly and clamps to zero instead of going negative.
func (s *SessionRecord) DurationMinutes() int64 {
	d := s.LastActivity.Sub(s.CreatedAt)
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}

// LoginHistoryEntry is one append-only login attempt record, successful
// or not. Immutable once created.
type LoginHistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	IPAddress string    `json:"ip_address"`
	Browser   string    `json:"browser"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}
