package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/service"
)

// AcademicsHandler exposes the academic structure endpoints.
type AcademicsHandler struct {
	academics *service.AcademicsService
}

// NewAcademicsHandler constructs handler.
func NewAcademicsHandler(academicsService *service.AcademicsService) *AcademicsHandler {
	return &AcademicsHandler{academics: academicsService}
}

// ListPrograms handles GET /academics/programs.
func (h *AcademicsHandler) ListPrograms(c *fiber.Ctx) error {
	org := mustOrg(c)
	programs, err := h.academics.ListPrograms(c.UserContext(), org.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromPrograms(programs)})
}

// CreateProgram handles POST /academics/programs.
func (h *AcademicsHandler) CreateProgram(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	program, err := h.academics.CreateProgram(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProgram(program)})
}

// UpdateProgram handles PUT /academics/programs/:id.
func (h *AcademicsHandler) UpdateProgram(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	program, err := h.academics.UpdateProgram(c.UserContext(), org.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProgram(program)})
}

// DeleteProgram handles DELETE /academics/programs/:id.
func (h *AcademicsHandler) DeleteProgram(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.academics.DeleteProgram(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListLevels handles GET /academics/programs/:programID/levels.
func (h *AcademicsHandler) ListLevels(c *fiber.Ctx) error {
	org := mustOrg(c)
	levels, err := h.academics.ListLevels(c.UserContext(), org.ID, c.Params("programID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromLevels(levels)})
}

// CreateLevel handles POST /academics/levels.
func (h *AcademicsHandler) CreateLevel(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.LevelInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	level, err := h.academics.CreateLevel(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromLevel(level)})
}

// UpdateLevel handles PUT /academics/levels/:id.
func (h *AcademicsHandler) UpdateLevel(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.LevelInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	level, err := h.academics.UpdateLevel(c.UserContext(), org.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromLevel(level)})
}

// DeleteLevel handles DELETE /academics/levels/:id.
func (h *AcademicsHandler) DeleteLevel(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.academics.DeleteLevel(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListSections handles GET /academics/levels/:levelID/sections.
func (h *AcademicsHandler) ListSections(c *fiber.Ctx) error {
	org := mustOrg(c)
	sections, err := h.academics.ListSections(c.UserContext(), org.ID, c.Params("levelID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSections(sections)})
}

// CreateSection handles POST /academics/sections.
func (h *AcademicsHandler) CreateSection(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.SectionInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	section, err := h.academics.CreateSection(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromSection(section)})
}

// UpdateSection handles PUT /academics/sections/:id.
func (h *AcademicsHandler) UpdateSection(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.SectionInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	section, err := h.academics.UpdateSection(c.UserContext(), org.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSection(section)})
}

// DeleteSection handles DELETE /academics/sections/:id.
func (h *AcademicsHandler) DeleteSection(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.academics.DeleteSection(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListSubjects handles GET /academics/levels/:levelID/subjects.
func (h *AcademicsHandler) ListSubjects(c *fiber.Ctx) error {
	org := mustOrg(c)
	subjects, err := h.academics.ListSubjects(c.UserContext(), org.ID, c.Params("levelID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSubjects(subjects)})
}

// CreateSubject handles POST /academics/subjects.
func (h *AcademicsHandler) CreateSubject(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	subject, err := h.academics.CreateSubject(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromSubject(subject)})
}

// UpdateSubject handles PUT /academics/subjects/:id.
func (h *AcademicsHandler) UpdateSubject(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	subject, err := h.academics.UpdateSubject(c.UserContext(), org.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSubject(subject)})
}

// DeleteSubject handles DELETE /academics/subjects/:id.
func (h *AcademicsHandler) DeleteSubject(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.academics.DeleteSubject(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListAssignments handles GET /academics/sections/:sectionID/assignments.
func (h *AcademicsHandler) ListAssignments(c *fiber.Ctx) error {
	org := mustOrg(c)
	assignments, err := h.academics.ListAssignments(c.UserContext(), org.ID, c.Params("sectionID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAssignments(assignments)})
}

// AssignInstructor handles PUT /academics/assignments.
func (h *AcademicsHandler) AssignInstructor(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.AssignmentInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	assignment, err := h.academics.AssignInstructor(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAssignment(assignment)})
}

// RemoveAssignment handles DELETE /academics/assignments/:id.
func (h *AcademicsHandler) RemoveAssignment(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.academics.RemoveAssignment(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
