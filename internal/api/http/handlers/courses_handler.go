package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/service"
)

// CoursesHandler exposes course catalogue endpoints.
type CoursesHandler struct {
	courses *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courses *service.CourseService) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// Create handles POST /courses.
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	course, err := h.courses.CreateCourse(c.UserContext(), &domain.Course{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": courseResponse(course)})
}

// Update handles PUT /courses/:id.
func (h *CoursesHandler) Update(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	course, err := h.courses.UpdateCourse(c.UserContext(), &domain.Course{
		ID:          c.Params("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courseResponse(course)})
}

// Delete handles DELETE /courses/:id.
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	if err := h.courses.DeleteCourse(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.GetCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courseResponse(course)})
}

// List handles GET /courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.ListCourses(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		items = append(items, courseResponse(&courses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func courseResponse(course *domain.Course) fiber.Map {
	return fiber.Map{
		"id":          course.ID,
		"name":        course.Name,
		"description": course.Description,
		"created_at":  course.CreatedAt,
		"updated_at":  course.UpdatedAt,
	}
}
