package dto

import "github.com/edusekai/platform-api/internal/domain"

// PermissionResponse is one grantable capability.
type PermissionResponse struct {
	ID       string `json:"id"`
	Codename string `json:"codename"`
	Name     string `json:"name"`
	Module   string `json:"module"`
}

// FromPermission maps a domain permission.
func FromPermission(p *domain.Permission) PermissionResponse {
	return PermissionResponse{ID: p.ID, Codename: p.Codename, Name: p.Name, Module: p.Module}
}

// RoleResponse is the role-editor shape.
type RoleResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	Description  string               `json:"description,omitempty"`
	IsSystemRole bool                 `json:"is_system_role"`
	MemberCount  int                  `json:"member_count"`
	Permissions  []PermissionResponse `json:"permissions"`
}

// FromRole maps a domain role.
func FromRole(r *domain.Role) *RoleResponse {
	perms := make([]PermissionResponse, 0, len(r.Permissions))
	for i := range r.Permissions {
		perms = append(perms, FromPermission(&r.Permissions[i]))
	}
	return &RoleResponse{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		IsSystemRole: r.IsSystemRole,
		MemberCount:  r.MemberCount,
		Permissions:  perms,
	}
}

// FromRoles maps a role list.
func FromRoles(roles []*domain.Role) []*RoleResponse {
	out := make([]*RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, FromRole(r))
	}
	return out
}
