package domain

import "time"

// Class groups students for a course under a teacher for a school year.
// TeacherID references a users row with the teacher role.
type Class struct {
	ID        string
	Name      string
	Year      int
	CourseID  string
	TeacherID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
