package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/service"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// PaymentsHandler exposes the public paid-signup endpoints. These run on the
// marketing surface, outside any tenant.
type PaymentsHandler struct {
	payments   *service.PaymentService
	orgs       *service.OrganizationService
	rootDomain string
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService, orgService *service.OrganizationService, rootDomain string) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService, orgs: orgService, rootDomain: rootDomain}
}

// CheckAvailability handles POST /signup/check.
func (h *PaymentsHandler) CheckAvailability(c *fiber.Ctx) error {
	var req struct {
		Subdomain string `json:"subdomain"`
		Username  string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Subdomain == "" || req.Username == "" {
		return apperrors.NewValidationError("subdomain and username required", nil)
	}

	if err := h.orgs.CheckAvailability(c.UserContext(), req.Subdomain, req.Username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"available": true}})
}

// Initiate handles POST /signup/initiate. The response carries the signed
// gateway form the browser posts to eSewa.
func (h *PaymentsHandler) Initiate(c *fiber.Ctx) error {
	var input service.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	form, err := h.payments.InitiateSignup(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": form})
}

// Verify handles GET /signup/verify?data=<base64>. The gateway redirects the
// browser here after payment; a confirmed payment provisions the tenant.
func (h *PaymentsHandler) Verify(c *fiber.Ctx) error {
	org, err := h.payments.VerifySignup(c.UserContext(), c.Query("data"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"organization": dto.FromOrganization(org),
		"portal_url":   "https://" + org.Subdomain + "." + h.rootDomain,
	}})
}
