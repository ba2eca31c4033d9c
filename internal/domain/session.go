package domain

import "time"

// SessionPayload is the authenticated identity carried inside a token.
// It is built once at login and never mutated afterwards; timestamps are UTC.
type SessionPayload struct {
	SubjectID string
	Username  string
	Name      string
	Surname   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
