package tenant

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/domain"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

const organizationKey = "tenant_organization"

// Middleware resolves the request host to an organization and stores it in
// request locals. Hosts without a tenant label, and labels without a live
// organization, fail closed with TENANT_NOT_FOUND.
type Middleware struct {
	resolver *Resolver
}

// NewMiddleware constructs tenant middleware.
func NewMiddleware(resolver *Resolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// Handle enforces tenant resolution for tenant-scoped routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	sub, ok := SubdomainFromHost(c.Hostname())
	if !ok {
		return apperrors.NewTenantNotFound(c.Hostname())
	}

	res, err := m.resolver.Resolve(c.UserContext(), sub, "")
	if err != nil {
		return apperrors.MapError(err)
	}
	if !res.TenantExists {
		return apperrors.NewTenantNotFound(sub)
	}

	c.Locals(organizationKey, res.Organization)
	return c.Next()
}

// OrganizationFromContext retrieves the resolved tenant.
func OrganizationFromContext(c *fiber.Ctx) (*domain.Organization, bool) {
	val := c.Locals(organizationKey)
	if val == nil {
		return nil, false
	}
	org, ok := val.(*domain.Organization)
	return org, ok
}
