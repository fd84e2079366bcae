// Package models defines the server-side data models shared by services and
// both storage backends.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash, never the
// plaintext password.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	DefaultFromLang string
	DefaultToLang   string
	CreatedAt       time.Time
}

// Preferences are the user's default translation direction.
type Preferences struct {
	FromLang string
	ToLang   string
}
