package domain

import "time"

// Student models an enrolled pupil. ClassID is nil until enrollment;
// ParentID references a users row with the parent role.
type Student struct {
	ID        string
	FirstName string
	LastName  string
	BirthDate time.Time
	ClassID   *string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
