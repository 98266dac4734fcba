package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/service"
)

// StaffHandler exposes staff onboarding and record endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staffService}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	org := mustOrg(c)
	staff, err := h.staff.List(c.UserContext(), org.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStaffList(staff)})
}

// ListInstructors handles GET /staff/instructors.
func (h *StaffHandler) ListInstructors(c *fiber.Ctx) error {
	org := mustOrg(c)
	instructors, err := h.staff.ListInstructors(c.UserContext(), org.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInstructors(instructors)})
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	org := mustOrg(c)
	staff, err := h.staff.Get(c.UserContext(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStaff(staff)})
}

// ValidateStep handles POST /staff/onboarding/steps/:step.
func (h *StaffHandler) ValidateStep(c *fiber.Ctx) error {
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid step")
	}

	var input service.OnboardingInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.staff.ValidateStep(step, input); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"step": step, "valid": true}})
}

// Onboard handles POST /staff/onboarding.
func (h *StaffHandler) Onboard(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.OnboardingInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	staff, err := h.staff.Onboard(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromStaff(staff)})
}

// Update handles PUT /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.StaffUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	staff, err := h.staff.Update(c.UserContext(), org.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStaff(staff)})
}

// Delete handles DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.staff.Delete(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
