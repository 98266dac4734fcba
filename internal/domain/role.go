package domain

import "time"

// RoleSlugOwner is the built-in organization-owner role. Its permission set
// is the wildcard, never an explicit list.
const RoleSlugOwner = "owner"

// PermissionWildcard grants every capability.
const PermissionWildcard = "*"

// Permission is one grantable capability, checked by codename.
type Permission struct {
	ID          string
	Codename    string
	Name        string
	Module      string
	Description string
}

// Role groups permissions under a name. System roles keep their name and
// slug immutable, though their permission set stays editable.
type Role struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	IsSystemRole bool
	Permissions  []Permission
	// MemberCount is the number of active assignments within the tenant,
	// populated on list queries only.
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRole binds a user to a role within one organization.
type UserRole struct {
	ID             string
	UserID         string
	RoleID         string
	RoleSlug       string
	OrganizationID string
	IsActive       bool
	CreatedAt      time.Time
}
