package models

import "time"

// Session is the server-side record behind a bearer token.
//
// SessionID is the raw random identifier and never leaves the server once
// issued. SignedSessionID is the HMAC of SessionID and is the only value a
// client presents.
type Session struct {
	SessionID       string
	SignedSessionID string
	UserID          string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// Expired reports whether the session is no longer valid at now.
// A session is invalid at or after ExpiresAt.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
