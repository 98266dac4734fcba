package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/edusekai/platform-api/internal/domain"
)

func TestSubdomainFromHost(t *testing.T) {
	cases := []struct {
		name string
		host string
		want string
		ok   bool
	}{
		{"tenant host", "acme.edusekai.com", "acme", true},
		{"deep host", "acme.staging.edusekai.com", "acme", true},
		{"uppercase label", "ACME.edusekai.com", "acme", true},
		{"host with port", "acme.edusekai.com:8080", "acme", true},
		{"bare domain", "localhost", "", false},
		{"bare domain with port", "localhost:3000", "", false},
		{"empty host", "", "", false},
		{"leading dot", ".edusekai.com", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SubdomainFromHost(tc.host)
			if ok != tc.ok {
				t.Fatalf("SubdomainFromHost(%q) ok = %v, want %v", tc.host, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("SubdomainFromHost(%q) = %q, want %q", tc.host, got, tc.want)
			}
		})
	}
}

// stubOrgRepo serves a single organization keyed by subdomain.
type stubOrgRepo struct {
	org *domain.Organization
	err error
}

func (r *stubOrgRepo) GetBySubdomain(_ context.Context, subdomain string) (*domain.Organization, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.org != nil && r.org.Subdomain == subdomain {
		return r.org, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubOrgRepo) Create(_ context.Context, _ *domain.Organization) error { return nil }
func (r *stubOrgRepo) GetByID(_ context.Context, _ string) (*domain.Organization, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubOrgRepo) SubdomainTaken(_ context.Context, _ string) (bool, error) { return false, nil }
func (r *stubOrgRepo) GetInstitutionProfile(_ context.Context, _ string) (*domain.InstitutionProfile, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubOrgRepo) UpsertInstitutionProfile(_ context.Context, _ *domain.InstitutionProfile) error {
	return nil
}

// stubUserRepo serves a single user by id.
type stubUserRepo struct {
	user *domain.User
	err  error
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (r *stubUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }
func (r *stubUserRepo) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubUserRepo) UsernameTaken(_ context.Context, _ string) (bool, error) { return false, nil }
func (r *stubUserRepo) IssueLogin(_ context.Context, _ string, _ *domain.User, _, _ string) error {
	return nil
}

func TestResolverResolve(t *testing.T) {
	activeOrg := &domain.Organization{ID: "org-1", Subdomain: "acme", IsActive: true}
	inactiveOrg := &domain.Organization{ID: "org-2", Subdomain: "dormant", IsActive: false}
	knownUser := &domain.User{ID: "user-1", Username: "principal"}

	cases := []struct {
		name         string
		orgs         *stubOrgRepo
		users        *stubUserRepo
		subdomain    string
		userID       string
		tenantExists bool
		userExists   bool
	}{
		{
			name:         "tenant missing",
			orgs:         &stubOrgRepo{},
			users:        &stubUserRepo{},
			subdomain:    "acme",
			tenantExists: false,
		},
		{
			name:         "inactive tenant reported as absent",
			orgs:         &stubOrgRepo{org: inactiveOrg},
			users:        &stubUserRepo{},
			subdomain:    "dormant",
			tenantExists: false,
		},
		{
			name:         "tenant present, user missing",
			orgs:         &stubOrgRepo{org: activeOrg},
			users:        &stubUserRepo{},
			subdomain:    "acme",
			userID:       "user-gone",
			tenantExists: true,
			userExists:   false,
		},
		{
			name:         "tenant and user present",
			orgs:         &stubOrgRepo{org: activeOrg},
			users:        &stubUserRepo{user: knownUser},
			subdomain:    "acme",
			userID:       "user-1",
			tenantExists: true,
			userExists:   true,
		},
		{
			name:         "no user id skips the user lookup",
			orgs:         &stubOrgRepo{org: activeOrg},
			users:        &stubUserRepo{err: errors.New("must not be called")},
			subdomain:    "acme",
			tenantExists: true,
			userExists:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(tc.orgs, tc.users)
			res, err := r.Resolve(context.Background(), tc.subdomain, tc.userID)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if res.TenantExists != tc.tenantExists {
				t.Fatalf("TenantExists = %v, want %v", res.TenantExists, tc.tenantExists)
			}
			if res.UserExists != tc.userExists {
				t.Fatalf("UserExists = %v, want %v", res.UserExists, tc.userExists)
			}
			if tc.tenantExists && res.Organization == nil {
				t.Fatal("existing tenant came back without its organization")
			}
			if !tc.tenantExists && res.Organization != nil {
				t.Fatalf("absent tenant carried organization %+v", res.Organization)
			}
		})
	}
}

func TestResolverResolveStorageErrors(t *testing.T) {
	boom := errors.New("connection refused")

	// A storage failure is an error; only a missing row is a negative fact.
	r := NewResolver(&stubOrgRepo{err: boom}, &stubUserRepo{})
	if _, err := r.Resolve(context.Background(), "acme", ""); !errors.Is(err, boom) {
		t.Fatalf("org storage error = %v, want %v", err, boom)
	}

	active := &domain.Organization{ID: "org-1", Subdomain: "acme", IsActive: true}
	r = NewResolver(&stubOrgRepo{org: active}, &stubUserRepo{err: boom})
	if _, err := r.Resolve(context.Background(), "acme", "user-1"); !errors.Is(err, boom) {
		t.Fatalf("user storage error = %v, want %v", err, boom)
	}
}
