package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// RequirePermission gates a route on the owner role or an explicit
// permission codename, mirroring the page guards everywhere in the app.
func RequirePermission(codename string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Checker.IsOwner() || principal.Checker.Can(codename) {
			return c.Next()
		}
		return apperrors.NewForbidden("access denied")
	}
}

// RequirePasswordChanged blocks every route except the password-change
// endpoint while the account carries the mandatory-change flag. There is no
// bypass other than completing the change.
func RequirePasswordChanged() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.User.NeedsPasswordChange {
			return apperrors.NewDomainError("PASSWORD_CHANGE_REQUIRED",
				"password change required before continuing", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}
