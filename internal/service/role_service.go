package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/pkg/util"
)

// RoleService manages tenant roles and their permission sets.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// RoleInput describes role create/update payloads.
type RoleInput struct {
	Name          string
	Description   string
	PermissionIDs []string
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases, collapses non-alphanumeric runs to single hyphens and
// trims boundary hyphens.
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends a numeric suffix until the slug is free in the tenant.
func (s *RoleService) uniqueSlug(ctx context.Context, orgID, base string) (string, error) {
	if base == "" {
		base = "role"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := s.roles.SlugTaken(ctx, orgID, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// List returns the tenant's roles, system roles first.
func (s *RoleService) List(ctx context.Context, orgID string) ([]*domain.Role, error) {
	return s.roles.List(ctx, orgID)
}

// Get returns one role with its permissions.
func (s *RoleService) Get(ctx context.Context, orgID, roleID string) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, orgID, roleID)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("role", map[string]any{"id": roleID})
	}
	return role, err
}

// Permissions lists the full capability catalog for the role editor.
func (s *RoleService) Permissions(ctx context.Context) ([]*domain.Permission, error) {
	return s.roles.ListPermissions(ctx)
}

// Create adds a custom role. The slug is derived from the name and made
// unique within the tenant with a numeric suffix.
func (s *RoleService) Create(ctx context.Context, orgID string, input RoleInput) (*domain.Role, error) {
	slug, err := s.uniqueSlug(ctx, orgID, Slugify(input.Name))
	if err != nil {
		return nil, err
	}
	role := &domain.Role{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
	}
	if err := s.roles.Create(ctx, orgID, role, input.PermissionIDs); err != nil {
		return nil, err
	}
	return s.roles.GetByID(ctx, orgID, role.ID)
}

// Update edits a role. System roles keep their name and slug; only their
// permission set may change.
func (s *RoleService) Update(ctx context.Context, orgID, roleID string, input RoleInput) (*domain.Role, error) {
	role, err := s.Get(ctx, orgID, roleID)
	if err != nil {
		return nil, err
	}
	if role.IsSystemRole {
		if role.Slug == domain.RoleSlugOwner {
			return nil, util.NewForbidden("the owner role cannot be edited")
		}
	} else if input.Name != role.Name {
		role.Name = input.Name
		slug, err := s.uniqueSlug(ctx, orgID, Slugify(input.Name))
		if err != nil {
			return nil, err
		}
		role.Slug = slug
	}
	role.Description = input.Description

	if err := s.roles.Update(ctx, orgID, role, input.PermissionIDs); err != nil {
		return nil, err
	}
	return s.roles.GetByID(ctx, orgID, role.ID)
}

// Delete removes a custom role. System roles are undeletable.
func (s *RoleService) Delete(ctx context.Context, orgID, roleID string) error {
	role, err := s.Get(ctx, orgID, roleID)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return util.NewForbidden("system roles cannot be deleted")
	}
	return s.roles.Delete(ctx, orgID, roleID)
}
