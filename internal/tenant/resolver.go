package tenant

import (
	"context"
	"strings"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/repository"
)

// SubdomainFromHost extracts the candidate tenant subdomain from a request
// host. A host needs at least two dot-separated labels to carry one; anything
// shorter fails closed.
func SubdomainFromHost(host string) (string, bool) {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 || labels[0] == "" {
		return "", false
	}
	return strings.ToLower(labels[0]), true
}

// Resolution reports both facts a client needs: whether the tenant exists
// and, when a session user id is supplied, whether that user exists. The two
// are returned separately rather than inferring one from the other's error.
type Resolution struct {
	Subdomain    string
	TenantExists bool
	UserExists   bool
	Organization *domain.Organization
}

// Resolver answers tenant-existence checks against the organization store.
type Resolver struct {
	orgs  repository.OrganizationRepository
	users repository.UserRepository
}

// NewResolver constructs a Resolver.
func NewResolver(orgs repository.OrganizationRepository, users repository.UserRepository) *Resolver {
	return &Resolver{orgs: orgs, users: users}
}

// Resolve looks up the organization for a subdomain and, when userID is
// non-empty, the session user. A storage failure is returned as-is; a missing
// row is a negative fact, not an error.
func (r *Resolver) Resolve(ctx context.Context, subdomain, userID string) (*Resolution, error) {
	res := &Resolution{Subdomain: subdomain}

	org, err := r.orgs.GetBySubdomain(ctx, subdomain)
	if err == nil && org != nil && org.IsActive {
		res.TenantExists = true
		res.Organization = org
	} else if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}

	if userID != "" {
		user, err := r.users.GetByID(ctx, userID)
		if err == nil && user != nil {
			res.UserExists = true
		} else if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
	}

	return res, nil
}
