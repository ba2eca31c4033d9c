package service

import (
	"context"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util/errorutil"
)

// CourseService manages the course catalogue.
type CourseService struct {
	courses repository.CourseRepository
}

// NewCourseService constructs the service.
func NewCourseService(courses repository.CourseRepository) *CourseService {
	return &CourseService{courses: courses}
}

// CreateCourse adds a course to the catalogue.
func (s *CourseService) CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if course.Name == "" {
		return nil, apperrors.NewValidationError("course name required", nil)
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.MapError(err)
	}
	return course, nil
}

// UpdateCourse modifies course metadata.
func (s *CourseService) UpdateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, apperrors.MapError(err)
	}
	return course, nil
}

// DeleteCourse removes a course.
func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetCourse fetches one course.
func (s *CourseService) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return course, nil
}

// ListCourses returns the catalogue.
func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return courses, nil
}
