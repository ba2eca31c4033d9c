package domain

import "time"

// Course is a subject taught across one or more classes.
type Course struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
