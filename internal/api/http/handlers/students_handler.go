package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	"github.com/spec-kit/school-service/internal/service"
)

// StudentsHandler exposes student CRUD and medical record endpoints.
type StudentsHandler struct {
	students *service.StudentService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(students *service.StudentService) *StudentsHandler {
	return &StudentsHandler{students: students}
}

// Create handles POST /students.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.students.CreateStudent(c.UserContext(), &domain.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		ClassID:   req.ClassID,
		ParentID:  req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": studentResponse(student)})
}

// Update handles PUT /students/:id.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.students.UpdateStudent(c.UserContext(), &domain.Student{
		ID:        c.Params("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		ClassID:   req.ClassID,
		ParentID:  req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": studentResponse(student)})
}

// Delete handles DELETE /students/:id.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.students.DeleteStudent(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /students/:id.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	student, err := h.students.GetStudent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": studentResponse(student)})
}

// List handles GET /students.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	filter := repository.StudentFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if classID := c.Query("class_id"); classID != "" {
		filter.ClassID = &classID
	}
	if parentID := c.Query("parent_id"); parentID != "" {
		filter.ParentID = &parentID
	}

	students, err := h.students.ListStudents(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(students))
	for i := range students {
		items = append(items, studentResponse(&students[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddMedicalRecord handles POST /students/:id/medical-records.
func (h *StudentsHandler) AddMedicalRecord(c *fiber.Ctx) error {
	var req dto.MedicalRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Description == "" {
		return fiber.NewError(http.StatusBadRequest, "description required")
	}

	record, err := h.students.AddMedicalRecord(c.UserContext(), &domain.MedicalRecord{
		StudentID:   c.Params("id"),
		Kind:        domain.MedicalRecordKind(req.Kind),
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": medicalRecordResponse(record)})
}

// ListMedicalRecords handles GET /students/:id/medical-records.
func (h *StudentsHandler) ListMedicalRecords(c *fiber.Ctx) error {
	records, err := h.students.ListMedicalRecords(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(records))
	for i := range records {
		items = append(items, medicalRecordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteMedicalRecord handles DELETE /medical-records/:id.
func (h *StudentsHandler) DeleteMedicalRecord(c *fiber.Ctx) error {
	if err := h.students.DeleteMedicalRecord(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func studentResponse(student *domain.Student) fiber.Map {
	return fiber.Map{
		"id":         student.ID,
		"first_name": student.FirstName,
		"last_name":  student.LastName,
		"birth_date": student.BirthDate,
		"class_id":   student.ClassID,
		"parent_id":  student.ParentID,
		"created_at": student.CreatedAt,
		"updated_at": student.UpdatedAt,
	}
}

func medicalRecordResponse(record *domain.MedicalRecord) fiber.Map {
	return fiber.Map{
		"id":          record.ID,
		"student_id":  record.StudentID,
		"kind":        record.Kind,
		"description": record.Description,
		"severity":    record.Severity,
		"created_at":  record.CreatedAt,
	}
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
