package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/edusekai/platform-api/internal/api/dto"
	"github.com/edusekai/platform-api/internal/service"
	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// CredentialsHandler exposes bulk portal activation and the distribution
// list of outstanding initial passwords.
type CredentialsHandler struct {
	credentials *service.CredentialService
}

// NewCredentialsHandler constructs handler.
func NewCredentialsHandler(credentialService *service.CredentialService) *CredentialsHandler {
	return &CredentialsHandler{credentials: credentialService}
}

type studentActivationRequest struct {
	StudentIDs []string `json:"student_ids"`
}

type staffActivationRequest struct {
	Items []service.StaffActivationItem `json:"items"`
}

// ActivateStudents handles POST /credentials/students/activate. Items are
// processed in order; the response reports successes and failures per index.
func (h *CredentialsHandler) ActivateStudents(c *fiber.Ctx) error {
	org := mustOrg(c)
	var req studentActivationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.StudentIDs) == 0 {
		return apperrors.NewValidationError("student_ids required", map[string]any{"student_ids": "required"})
	}

	result, err := h.credentials.ActivateStudents(c.UserContext(), org.ID, req.StudentIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// ActivateStaff handles POST /credentials/staff/activate.
func (h *CredentialsHandler) ActivateStaff(c *fiber.Ctx) error {
	org := mustOrg(c)
	var req staffActivationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items required", map[string]any{"items": "required"})
	}

	result, err := h.credentials.ActivateStaff(c.UserContext(), org.ID, req.Items)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// DistributionList handles GET /credentials/pending.
func (h *CredentialsHandler) DistributionList(c *fiber.Ctx) error {
	org := mustOrg(c)
	creds, err := h.credentials.DistributionList(c.UserContext(), org.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromPendingCredentials(creds)})
}
