package domain

import "time"

// User is the credential-store record behind every principal
// (administrators, teachers, parents and students alike).
type User struct {
	ID           string
	Username     string
	Name         string
	Surname      string
	PasswordHash string
	Role         Role
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
