package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/events"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util/errorutil"
)

// ClassService manages classes and student enrollment.
type ClassService struct {
	classes    repository.ClassRepository
	courses    repository.CourseRepository
	students   repository.StudentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ClassDependencies encapsulates repo requirements for the class service.
type ClassDependencies struct {
	ClassRepo   repository.ClassRepository
	CourseRepo  repository.CourseRepository
	StudentRepo repository.StudentRepository
	UserRepo    repository.UserRepository
}

// NewClassService builds the service.
func NewClassService(deps ClassDependencies, dispatcher events.Dispatcher) *ClassService {
	return &ClassService{
		classes:    deps.ClassRepo,
		courses:    deps.CourseRepo,
		students:   deps.StudentRepo,
		users:      deps.UserRepo,
		dispatcher: dispatcher,
	}
}

// CreateClass creates a class for an existing course; the assigned teacher
// must hold the teacher role.
func (s *ClassService) CreateClass(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if class.Name == "" {
		return nil, apperrors.NewValidationError("class name required", nil)
	}
	if _, err := s.courses.GetByID(ctx, class.CourseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course", map[string]any{"course_id": class.CourseID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.checkTeacher(ctx, class.TeacherID); err != nil {
		return nil, err
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, apperrors.MapError(err)
	}
	return class, nil
}

// UpdateClass modifies class fields.
func (s *ClassService) UpdateClass(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if err := s.checkTeacher(ctx, class.TeacherID); err != nil {
		return nil, err
	}
	if err := s.classes.Update(ctx, class); err != nil {
		return nil, apperrors.MapError(err)
	}
	return class, nil
}

// DeleteClass removes a class.
func (s *ClassService) DeleteClass(ctx context.Context, id string) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetClass fetches one class.
func (s *ClassService) GetClass(ctx context.Context, id string) (*domain.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return class, nil
}

// ListClasses returns classes, optionally for one school year.
func (s *ClassService) ListClasses(ctx context.Context, year *int) ([]domain.Class, error) {
	classes, err := s.classes.List(ctx, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return classes, nil
}

// EnrollStudent places a student in a class and emits an enrollment event.
func (s *ClassService) EnrollStudent(ctx context.Context, classID, studentID string) error {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.students.AssignClass(ctx, studentID, classID); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStudentEnrolled,
			StudentID: studentID,
			Timestamp: time.Now().UTC(),
			Payload: events.StudentEnrolledPayload{
				ClassID:   class.ID,
				ClassName: class.Name,
				Year:      class.Year,
			},
		})
	}
	return nil
}

func (s *ClassService) checkTeacher(ctx context.Context, teacherID *string) error {
	if teacherID == nil {
		return nil
	}
	teacher, err := s.users.GetByID(ctx, *teacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("teacher", map[string]any{"teacher_id": *teacherID})
		}
		return apperrors.MapError(err)
	}
	if teacher.Role != domain.RoleTeacher {
		return apperrors.NewConflict("assigned user is not a teacher", map[string]any{"teacher_id": *teacherID})
	}
	return nil
}
