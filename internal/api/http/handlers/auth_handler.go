package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/service"
	"github.com/edusekai/platform-api/internal/tenant"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// AuthHandler exposes tenant authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewInternalError(nil)
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Identifier == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "identifier and password required")
	}

	user, pair, err := h.auth.Login(c.UserContext(), org, req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": fiber.Map{
			"id":                    user.ID,
			"username":              user.Username,
			"email":                 user.Email,
			"needs_password_change": user.NeedsPasswordChange,
		},
		"auth": tokenResponse(pair),
	}})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"auth": tokenResponse(pair)}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Organization, principal.User); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /auth/me, the session verification endpoint.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	sess := principal.Session
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		UserID:              principal.User.ID,
		Username:            principal.User.Username,
		Email:               principal.User.Email,
		NeedsPasswordChange: principal.User.NeedsPasswordChange,
		Roles:               sess.Roles,
		ActiveRole:          sess.ActiveRole,
		Permissions:         sess.Permissions,
		Profile:             dto.FromProfile(sess.Profile),
	}})
}

// SwitchRole handles POST /auth/active-role.
func (h *AuthHandler) SwitchRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SwitchRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RoleSlug == "" {
		return fiber.NewError(http.StatusBadRequest, "role_slug required")
	}

	if err := h.auth.SwitchActiveRole(c.UserContext(), principal.Organization, principal.User, req.RoleSlug); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"active_role": req.RoleSlug}})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := h.auth.ChangePassword(c.UserContext(), principal.Organization, principal.User,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

func tokenResponse(pair *service.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
