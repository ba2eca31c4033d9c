package domain

import "time"

// MedicalRecordKind classifies a medical entry.
type MedicalRecordKind string

const (
	MedicalKindAllergy    MedicalRecordKind = "ALLERGY"
	MedicalKindCondition  MedicalRecordKind = "CONDITION"
	MedicalKindMedication MedicalRecordKind = "MEDICATION"
)

// MedicalRecord holds an allergy/condition entry attached to a student.
type MedicalRecord struct {
	ID          string
	StudentID   string
	Kind        MedicalRecordKind
	Description string
	Severity    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
