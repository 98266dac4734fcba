package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/service"
	"github.com/edusekai/platform-api/internal/tenant"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// RolesHandler exposes the role-management endpoints.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

type roleRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}

// List handles GET /roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	org := mustOrg(c)
	roles, err := h.roles.List(c.UserContext(), org.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRoles(roles)})
}

// Get handles GET /roles/:id.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	org := mustOrg(c)
	role, err := h.roles.Get(c.UserContext(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRole(role)})
}

// Permissions handles GET /roles/permissions, the capability catalog.
func (h *RolesHandler) Permissions(c *fiber.Ctx) error {
	perms, err := h.roles.Permissions(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, dto.FromPermission(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	org := mustOrg(c)
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", map[string]any{"name": "required"})
	}

	role, err := h.roles.Create(c.UserContext(), org.ID, service.RoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromRole(role)})
}

// Update handles PUT /roles/:id.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	org := mustOrg(c)
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", map[string]any{"name": "required"})
	}

	role, err := h.roles.Update(c.UserContext(), org.ID, c.Params("id"), service.RoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromRole(role)})
}

// Delete handles DELETE /roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	org := mustOrg(c)
	if err := h.roles.Delete(c.UserContext(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// mustOrg returns the resolved tenant. Routes using it always run behind the
// tenant middleware, so a miss is a programming error surfaced as a 500.
func mustOrg(c *fiber.Ctx) *domain.Organization {
	org, _ := tenant.OrganizationFromContext(c)
	return org
}
