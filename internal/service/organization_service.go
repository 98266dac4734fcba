package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/pkg/util"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidSubdomain reports whether the label is usable as a tenant subdomain.
func ValidSubdomain(subdomain string) bool {
	return subdomainPattern.MatchString(subdomain)
}

// OwnerSeed is the first login created for a new tenant.
type OwnerSeed struct {
	Username     string
	Email        string
	PasswordHash string
}

// OrganizationService provisions tenants and manages institution profiles.
type OrganizationService struct {
	orgs       repository.OrganizationRepository
	users      repository.UserRepository
	roles      repository.RoleRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
	bcryptCost int
}

// OrganizationDependencies bundles collaborators for the organization service.
type OrganizationDependencies struct {
	OrgRepo    repository.OrganizationRepository
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Validator  *validation.Validator
	Dispatcher events.Dispatcher
}

// NewOrganizationService builds the service.
func NewOrganizationService(cfg config.Config, deps OrganizationDependencies) *OrganizationService {
	return &OrganizationService{
		orgs:       deps.OrgRepo,
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		validator:  deps.Validator,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SeedPermissionCatalog upserts the capability catalog. Run at startup so
// new codenames become grantable without a migration.
func (s *OrganizationService) SeedPermissionCatalog(ctx context.Context) error {
	return s.roles.SeedPermissions(ctx, domain.PermissionCatalog())
}

// CheckAvailability reports whether the subdomain and owner username are
// free. Used by the signup form before any payment is taken.
func (s *OrganizationService) CheckAvailability(ctx context.Context, subdomain, username string) error {
	if !ValidSubdomain(subdomain) {
		return util.NewValidationError("invalid subdomain", map[string]any{"subdomain": "must be lowercase letters, digits and hyphens"})
	}
	taken, err := s.orgs.SubdomainTaken(ctx, subdomain)
	if err != nil {
		return err
	}
	if taken {
		return util.NewConflict("subdomain already in use", map[string]any{"subdomain": subdomain})
	}
	taken, err = s.users.UsernameTaken(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return util.NewConflict("username already in use", map[string]any{"username": username})
	}
	return nil
}

// Provision creates the tenant: the organization row, its system roles with
// their permission sets, and the owner account holding the owner role.
func (s *OrganizationService) Provision(ctx context.Context, org *domain.Organization, owner OwnerSeed) (*domain.Organization, error) {
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	var ownerRoleID string
	for _, seed := range domain.SystemRoleSeeds() {
		permissionIDs, err := s.roles.PermissionIDsByCodename(ctx, seed.Codenames)
		if err != nil {
			return nil, err
		}
		role := &domain.Role{
			Name:         seed.Name,
			Slug:         seed.Slug,
			IsSystemRole: true,
		}
		if err := s.roles.Create(ctx, org.ID, role, permissionIDs); err != nil {
			return nil, err
		}
		if seed.Slug == domain.RoleSlugOwner {
			ownerRoleID = role.ID
		}
	}

	user := &domain.User{
		Username:     owner.Username,
		Email:        &owner.Email,
		PasswordHash: owner.PasswordHash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.roles.AssignRole(ctx, org.ID, user.ID, ownerRoleID); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{ //nolint:errcheck
			ID:             uuid.NewString(),
			Type:           events.EventOrganizationCreated,
			OrganizationID: org.ID,
			UserID:         &user.ID,
			Timestamp:      time.Now().UTC(),
		})
	}
	return org, nil
}

// HashOwnerPassword prepares a signup password for storage alongside the
// pending payment.
func (s *OrganizationService) HashOwnerPassword(password string) (string, error) {
	return auth.HashPassword(password, s.bcryptCost)
}

// InstitutionProfileInput describes editable institution details.
type InstitutionProfileInput struct {
	DisplayName   string `json:"display_name" validate:"required,max=150"`
	Motto         string `json:"motto" validate:"max=255"`
	Address       string `json:"address" validate:"max=255"`
	Phone         string `json:"phone" validate:"max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	Website       string `json:"website" validate:"omitempty,url"`
	EstablishedAt string `json:"established_at" validate:"omitempty,datetime=2006-01-02"`
}

// GetInstitutionProfile returns the tenant's public details, falling back to
// the organization record when none has been saved yet.
func (s *OrganizationService) GetInstitutionProfile(ctx context.Context, org *domain.Organization) (*domain.InstitutionProfile, error) {
	profile, err := s.orgs.GetInstitutionProfile(ctx, org.ID)
	if repository.IsNotFound(err) {
		return &domain.InstitutionProfile{
			OrganizationID: org.ID,
			DisplayName:    org.Name,
			Address:        org.Address,
			Phone:          org.Phone,
			Email:          org.Email,
		}, nil
	}
	return profile, err
}

// UpdateInstitutionProfile saves the tenant's public details.
func (s *OrganizationService) UpdateInstitutionProfile(ctx context.Context, orgID string, input InstitutionProfileInput) (*domain.InstitutionProfile, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	profile := &domain.InstitutionProfile{
		OrganizationID: orgID,
		DisplayName:    input.DisplayName,
		Motto:          input.Motto,
		Address:        input.Address,
		Phone:          input.Phone,
		Email:          input.Email,
		Website:        input.Website,
		EstablishedAt:  parseDate(input.EstablishedAt),
	}
	if err := s.orgs.UpsertInstitutionProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
