package dto

import "time"

// StudentRequest payload for create/update.
type StudentRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"birth_date"`
	ClassID   *string   `json:"class_id,omitempty"`
	ParentID  *string   `json:"parent_id,omitempty"`
}

// MedicalRecordRequest payload for adding a medical entry.
type MedicalRecordRequest struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
}
