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

// OrganizationsHandler exposes tenant resolution and institution profile
// endpoints.
type OrganizationsHandler struct {
	orgs     *service.OrganizationService
	resolver *tenant.Resolver
}

// NewOrganizationsHandler constructs handler.
func NewOrganizationsHandler(orgService *service.OrganizationService, resolver *tenant.Resolver) *OrganizationsHandler {
	return &OrganizationsHandler{orgs: orgService, resolver: resolver}
}

// Resolve handles GET /organizations/resolve. It reports whether the host's
// subdomain maps to a tenant, without requiring authentication, so the
// client can distinguish a dead subdomain from a dead session.
func (h *OrganizationsHandler) Resolve(c *fiber.Ctx) error {
	subdomain, ok := tenant.SubdomainFromHost(c.Hostname())
	if !ok {
		return apperrors.NewTenantNotFound(c.Hostname())
	}

	res, err := h.resolver.Resolve(c.UserContext(), subdomain, c.Query("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"subdomain":     res.Subdomain,
		"tenant_exists": res.TenantExists,
		"user_exists":   res.UserExists,
		"organization":  dto.FromOrganization(res.Organization),
	}})
}

// Current handles GET /organizations/current.
func (h *OrganizationsHandler) Current(c *fiber.Ctx) error {
	org := mustOrg(c)
	return c.JSON(fiber.Map{"data": dto.FromOrganization(org)})
}

// GetInstitutionProfile handles GET /organizations/profile.
func (h *OrganizationsHandler) GetInstitutionProfile(c *fiber.Ctx) error {
	org := mustOrg(c)
	profile, err := h.orgs.GetInstitutionProfile(c.UserContext(), org)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": institutionProfileResponse(profile)})
}

// UpdateInstitutionProfile handles PUT /organizations/profile.
func (h *OrganizationsHandler) UpdateInstitutionProfile(c *fiber.Ctx) error {
	org := mustOrg(c)
	var input service.InstitutionProfileInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	profile, err := h.orgs.UpdateInstitutionProfile(c.UserContext(), org.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": institutionProfileResponse(profile)})
}

func institutionProfileResponse(p *domain.InstitutionProfile) fiber.Map {
	resp := fiber.Map{
		"display_name": p.DisplayName,
		"motto":        p.Motto,
		"address":      p.Address,
		"phone":        p.Phone,
		"email":        p.Email,
		"website":      p.Website,
	}
	if p.EstablishedAt != nil {
		resp["established_at"] = p.EstablishedAt.Format("2006-01-02")
	}
	return resp
}
