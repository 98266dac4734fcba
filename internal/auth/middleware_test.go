package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/edusekai/platform-api/internal/domain"
)

type stubRoleRepo struct {
	slugs     []string
	codenames map[string][]string
}

func (r *stubRoleRepo) SlugsForUser(_ context.Context, _, _ string) ([]string, error) {
	return r.slugs, nil
}

func (r *stubRoleRepo) CodenamesForSlug(_ context.Context, _, slug string) ([]string, error) {
	return r.codenames[slug], nil
}

func (r *stubRoleRepo) Create(_ context.Context, _ string, _ *domain.Role, _ []string) error {
	return nil
}
func (r *stubRoleRepo) Update(_ context.Context, _ string, _ *domain.Role, _ []string) error {
	return nil
}
func (r *stubRoleRepo) Delete(_ context.Context, _, _ string) error { return nil }
func (r *stubRoleRepo) GetByID(_ context.Context, _, _ string) (*domain.Role, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubRoleRepo) GetBySlug(_ context.Context, _, _ string) (*domain.Role, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubRoleRepo) List(_ context.Context, _ string) ([]*domain.Role, error) { return nil, nil }
func (r *stubRoleRepo) SlugTaken(_ context.Context, _, _ string) (bool, error)   { return false, nil }
func (r *stubRoleRepo) AssignRole(_ context.Context, _, _, _ string) error       { return nil }
func (r *stubRoleRepo) ListPermissions(_ context.Context) ([]*domain.Permission, error) {
	return nil, nil
}
func (r *stubRoleRepo) PermissionIDsByCodename(_ context.Context, _ []string) ([]string, error) {
	return nil, nil
}
func (r *stubRoleRepo) SeedPermissions(_ context.Context, _ []*domain.Permission) error { return nil }

type stubProfileRepo struct{}

func (r *stubProfileRepo) Create(_ context.Context, _ *domain.Profile) error { return nil }
func (r *stubProfileRepo) Update(_ context.Context, _ *domain.Profile) error { return nil }
func (r *stubProfileRepo) GetByID(_ context.Context, _, _ string) (*domain.Profile, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubProfileRepo) GetByUserID(_ context.Context, _, _ string) (*domain.Profile, error) {
	return nil, pgx.ErrNoRows
}

// stubSessionStore records slot writes and serves an optional cached session.
type stubSessionStore struct {
	slot   string
	sets   []string
	cached *domain.SessionUser
	builds int
}

func (s *stubSessionStore) ActiveRole(_ context.Context, _ string) (string, error) {
	return s.slot, nil
}

func (s *stubSessionStore) SetActiveRole(_ context.Context, _, slug string) error {
	s.slot = slug
	s.sets = append(s.sets, slug)
	return nil
}

func (s *stubSessionStore) CachedSession(_ context.Context, _, _ string) (*domain.SessionUser, bool) {
	if s.cached == nil {
		return nil, false
	}
	return s.cached, true
}

func (s *stubSessionStore) CacheSession(_ context.Context, _, _ string, sess *domain.SessionUser) {
	s.cached = sess
	s.builds++
}

func testMiddleware(roles *stubRoleRepo, store *stubSessionStore) *Middleware {
	return NewMiddleware(nil, nil, roles, &stubProfileRepo{}, store)
}

func TestResolveSessionUnheldRoleNotPersisted(t *testing.T) {
	roles := &stubRoleRepo{slugs: []string{"instructor"}}
	store := &stubSessionStore{}
	m := testMiddleware(roles, store)
	org := &domain.Organization{ID: "org-1"}
	user := &domain.User{ID: "user-1"}

	sess, err := m.resolveSession(context.Background(), org, user, "owner")
	if err != nil {
		t.Fatalf("resolveSession: %v", err)
	}
	if sess.ActiveRole != "instructor" {
		t.Fatalf("ActiveRole = %q, want fallback to instructor", sess.ActiveRole)
	}
	if len(store.sets) != 0 {
		t.Fatalf("unheld role written to the slot: %v", store.sets)
	}

	// With no stale slot, the cached session satisfies the next plain
	// request instead of forcing a rebuild.
	if _, err := m.resolveSession(context.Background(), org, user, ""); err != nil {
		t.Fatalf("resolveSession: %v", err)
	}
	if store.builds != 1 {
		t.Fatalf("session rebuilt %d times, want 1", store.builds)
	}
}

func TestResolveSessionHeldRolePersisted(t *testing.T) {
	roles := &stubRoleRepo{
		slugs:     []string{"administrator", "instructor"},
		codenames: map[string][]string{"instructor": {"view_student"}},
	}
	store := &stubSessionStore{}
	m := testMiddleware(roles, store)

	sess, err := m.resolveSession(context.Background(),
		&domain.Organization{ID: "org-1"}, &domain.User{ID: "user-1"}, "instructor")
	if err != nil {
		t.Fatalf("resolveSession: %v", err)
	}
	if sess.ActiveRole != "instructor" {
		t.Fatalf("ActiveRole = %q, want instructor", sess.ActiveRole)
	}
	if store.slot != "instructor" {
		t.Fatalf("slot = %q, want instructor", store.slot)
	}
	if len(sess.Permissions) != 1 || sess.Permissions[0] != "view_student" {
		t.Fatalf("Permissions = %v", sess.Permissions)
	}
}

func TestResolveSessionOwnerWildcard(t *testing.T) {
	roles := &stubRoleRepo{slugs: []string{domain.RoleSlugOwner}}
	store := &stubSessionStore{}
	m := testMiddleware(roles, store)

	sess, err := m.resolveSession(context.Background(),
		&domain.Organization{ID: "org-1"}, &domain.User{ID: "user-1"}, "")
	if err != nil {
		t.Fatalf("resolveSession: %v", err)
	}
	if len(sess.Permissions) != 1 || sess.Permissions[0] != domain.PermissionWildcard {
		t.Fatalf("Permissions = %v, want the wildcard", sess.Permissions)
	}
}
