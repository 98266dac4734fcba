package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/service"
)

// StudentsHandler exposes admission and student record endpoints.
type StudentsHandler struct {
	students *service.StudentService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(studentService *service.StudentService) *StudentsHandler {
	return &StudentsHandler{students: studentService}
}

// List handles GET /students. The unactivated=true filter narrows to
// records without a portal account.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	org := mustOrg(c)
	unactivated := c.Query("unactivated") == "true"
	students, err := h.students.List(c.UserContext(), org.ID, unactivated)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStudents(students)})
}

// Get handles GET /students/:id.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	org := mustOrg(c)
	student, err := h.students.Get(c.UserContext(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStudent(student)})
}

// ValidateStep handles POST /students/admission/steps/:step. It validates
// only the fields belonging to the step, so the wizard can gate "Next"
// server-side without submitting the whole form.
func (h *StudentsHandler) ValidateStep(c *fiber.Ctx) error {
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid step")
	}

	var input service.AdmissionInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.students.ValidateStep(step, input); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"step": step, "valid": true}})
}

// Admit handles POST /students/admission.
func (h *StudentsHandler) Admit(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.AdmissionInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.students.Admit(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromStudent(student)})
}

// Update handles PUT /students/:id.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.StudentUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.students.Update(c.UserContext(), org.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStudent(student)})
}

// Delete handles DELETE /students/:id.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.students.Delete(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
