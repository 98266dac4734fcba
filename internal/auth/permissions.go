package auth

import "github.com/edusekai/platform-api/internal/domain"

// Checker answers capability questions for one resolved session. It is a
// plain value handed to whatever needs gating, so permission evaluation
// stays testable without any request context.
type Checker struct {
	owner bool
	set   map[string]struct{}
}

// NewChecker builds a Checker from the session's active role and permission
// codenames. The wildcard codename marks the session as owner.
func NewChecker(session *domain.SessionUser) Checker {
	c := Checker{set: make(map[string]struct{}, len(session.Permissions))}
	if session.ActiveRole == domain.RoleSlugOwner {
		c.owner = true
	}
	for _, p := range session.Permissions {
		if p == domain.PermissionWildcard {
			c.owner = true
			continue
		}
		c.set[p] = struct{}{}
	}
	return c
}

// IsOwner reports whether the active role is the organization owner.
func (c Checker) IsOwner() bool {
	return c.owner
}

// Can reports whether the session holds the permission codename. Pure set
// lookup, no side effects.
func (c Checker) Can(codename string) bool {
	if c.owner {
		return true
	}
	_, ok := c.set[codename]
	return ok
}
