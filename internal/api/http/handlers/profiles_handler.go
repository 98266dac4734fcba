package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/service"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// ProfilesHandler exposes the caller's own profile.
type ProfilesHandler struct {
	profiles *service.ProfileService
}

// NewProfilesHandler constructs handler.
func NewProfilesHandler(profiles *service.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

// Me handles GET /profiles/me.
func (h *ProfilesHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	profile, err := h.profiles.MyProfile(c.UserContext(), mustOrg(c).ID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProfile(profile)})
}

// UpdateMe handles PUT /profiles/me.
func (h *ProfilesHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var input service.ProfileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	profile, err := h.profiles.UpdateMyProfile(c.UserContext(), mustOrg(c).ID, principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProfile(profile)})
}
