package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/service"
)

// ClassesHandler exposes class and enrollment endpoints.
type ClassesHandler struct {
	classes *service.ClassService
}

// NewClassesHandler constructs handler.
func NewClassesHandler(classes *service.ClassService) *ClassesHandler {
	return &ClassesHandler{classes: classes}
}

// Create handles POST /classes.
func (h *ClassesHandler) Create(c *fiber.Ctx) error {
	var req dto.ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CourseID == "" {
		return fiber.NewError(http.StatusBadRequest, "course_id required")
	}

	class, err := h.classes.CreateClass(c.UserContext(), &domain.Class{
		Name:      req.Name,
		Year:      req.Year,
		CourseID:  req.CourseID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": classResponse(class)})
}

// Update handles PUT /classes/:id.
func (h *ClassesHandler) Update(c *fiber.Ctx) error {
	var req dto.ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	class, err := h.classes.UpdateClass(c.UserContext(), &domain.Class{
		ID:        c.Params("id"),
		Name:      req.Name,
		Year:      req.Year,
		CourseID:  req.CourseID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": classResponse(class)})
}

// Delete handles DELETE /classes/:id.
func (h *ClassesHandler) Delete(c *fiber.Ctx) error {
	if err := h.classes.DeleteClass(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /classes/:id.
func (h *ClassesHandler) Get(c *fiber.Ctx) error {
	class, err := h.classes.GetClass(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": classResponse(class)})
}

// List handles GET /classes.
func (h *ClassesHandler) List(c *fiber.Ctx) error {
	var year *int
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid year")
		}
		year = &parsed
	}

	classes, err := h.classes.ListClasses(c.UserContext(), year)
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(classes))
	for i := range classes {
		items = append(items, classResponse(&classes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Enroll handles POST /classes/:id/students.
func (h *ClassesHandler) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.StudentID == "" {
		return fiber.NewError(http.StatusBadRequest, "student_id required")
	}

	if err := h.classes.EnrollStudent(c.UserContext(), c.Params("id"), req.StudentID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "enrolled"}})
}

func classResponse(class *domain.Class) fiber.Map {
	return fiber.Map{
		"id":         class.ID,
		"name":       class.Name,
		"year":       class.Year,
		"course_id":  class.CourseID,
		"teacher_id": class.TeacherID,
		"created_at": class.CreatedAt,
		"updated_at": class.UpdatedAt,
	}
}
