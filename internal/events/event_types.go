package events

import (
	"time"

	"github.com/spec-kit/school-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStudentCreated     EventType = "student_created"
	EventStudentEnrolled    EventType = "student_enrolled"
	EventMedicalRecordAdded EventType = "medical_record_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StudentID string      `json:"student_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StudentCreatedPayload payload.
type StudentCreatedPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// StudentEnrolledPayload payload.
type StudentEnrolledPayload struct {
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name"`
	Year      int    `json:"year"`
}

// MedicalRecordAddedPayload payload.
type MedicalRecordAddedPayload struct {
	RecordID string                   `json:"record_id"`
	Kind     domain.MedicalRecordKind `json:"kind"`
	Severity string                   `json:"severity,omitempty"`
}
