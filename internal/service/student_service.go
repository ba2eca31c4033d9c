package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/events"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util/errorutil"
)

// StudentService manages student records and their medical entries.
type StudentService struct {
	students   repository.StudentRepository
	medical    repository.MedicalRecordRepository
	dispatcher events.Dispatcher
}

// NewStudentService constructs the service.
func NewStudentService(students repository.StudentRepository, medical repository.MedicalRecordRepository, dispatcher events.Dispatcher) *StudentService {
	return &StudentService{students: students, medical: medical, dispatcher: dispatcher}
}

// CreateStudent registers a new student.
func (s *StudentService) CreateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if student.FirstName == "" || student.LastName == "" {
		return nil, apperrors.NewValidationError("first and last name required", nil)
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventStudentCreated, student.ID, events.StudentCreatedPayload{
		FirstName: student.FirstName,
		LastName:  student.LastName,
	})
	return student, nil
}

// UpdateStudent modifies student fields.
func (s *StudentService) UpdateStudent(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if err := s.students.Update(ctx, student); err != nil {
		return nil, apperrors.MapError(err)
	}
	return student, nil
}

// DeleteStudent removes a student and, via the schema, their medical records.
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetStudent fetches one student.
func (s *StudentService) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return student, nil
}

// ListStudents returns students matching the filter.
func (s *StudentService) ListStudents(ctx context.Context, filter repository.StudentFilter) ([]domain.Student, error) {
	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return students, nil
}

// AddMedicalRecord attaches an allergy/condition entry to a student.
func (s *StudentService) AddMedicalRecord(ctx context.Context, record *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	switch record.Kind {
	case domain.MedicalKindAllergy, domain.MedicalKindCondition, domain.MedicalKindMedication:
	default:
		return nil, apperrors.NewValidationError("unknown medical record kind", map[string]any{"kind": record.Kind})
	}
	if _, err := s.students.GetByID(ctx, record.StudentID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.medical.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventMedicalRecordAdded, record.StudentID, events.MedicalRecordAddedPayload{
		RecordID: record.ID,
		Kind:     record.Kind,
		Severity: record.Severity,
	})
	return record, nil
}

// ListMedicalRecords returns a student's medical entries.
func (s *StudentService) ListMedicalRecords(ctx context.Context, studentID string) ([]domain.MedicalRecord, error) {
	records, err := s.medical.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// DeleteMedicalRecord removes one medical entry.
func (s *StudentService) DeleteMedicalRecord(ctx context.Context, id string) error {
	if err := s.medical.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *StudentService) publish(ctx context.Context, eventType events.EventType, studentID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StudentID: studentID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
