package service

import (
	"context"
	"errors"
	"testing"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/pkg/util"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Class Teacher", "class-teacher"},
		{"  Exam   Coordinator  ", "exam-coordinator"},
		{"Admin!!", "admin"},
		{"Grade 10 Lead", "grade-10-lead"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCreateUniquifiesSlug(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, testOrgID, RoleInput{Name: "Class Teacher"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Slug != "class-teacher" {
		t.Fatalf("first slug = %q, want class-teacher", first.Slug)
	}

	second, err := svc.Create(ctx, testOrgID, RoleInput{Name: "Class Teacher"})
	if err != nil {
		t.Fatalf("Create duplicate name: %v", err)
	}
	if second.Slug != "class-teacher-2" {
		t.Fatalf("second slug = %q, want class-teacher-2", second.Slug)
	}

	third, err := svc.Create(ctx, testOrgID, RoleInput{Name: "Class Teacher"})
	if err != nil {
		t.Fatalf("Create third duplicate: %v", err)
	}
	if third.Slug != "class-teacher-3" {
		t.Fatalf("third slug = %q, want class-teacher-3", third.Slug)
	}
}

func TestUpdateSystemRoles(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	owner := &domain.Role{Name: "Owner", Slug: domain.RoleSlugOwner, IsSystemRole: true}
	repo.Create(ctx, testOrgID, owner, nil) //nolint:errcheck
	admin := &domain.Role{Name: "Administrator", Slug: "administrator", IsSystemRole: true}
	repo.Create(ctx, testOrgID, admin, nil) //nolint:errcheck

	_, err := svc.Update(ctx, testOrgID, owner.ID, RoleInput{Name: "Renamed"})
	var derr *util.DomainError
	if !errors.As(err, &derr) || derr.Code != "FORBIDDEN" {
		t.Fatalf("owner role update = %v, want FORBIDDEN", err)
	}

	// Other system roles accept permission changes but keep name and slug.
	updated, err := svc.Update(ctx, testOrgID, admin.ID, RoleInput{
		Name:          "Renamed Admin",
		Description:   "all permissions",
		PermissionIDs: []string{"perm-view_role"},
	})
	if err != nil {
		t.Fatalf("admin role update: %v", err)
	}
	if updated.Name != "Administrator" || updated.Slug != "administrator" {
		t.Fatalf("system role renamed to %q/%q", updated.Name, updated.Slug)
	}
	if updated.Description != "all permissions" {
		t.Fatalf("description = %q", updated.Description)
	}
}

func TestUpdateCustomRoleReslugifies(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	role, err := svc.Create(ctx, testOrgID, RoleInput{Name: "Librarian"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := svc.Update(ctx, testOrgID, role.ID, RoleInput{Name: "Head Librarian"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Head Librarian" || updated.Slug != "head-librarian" {
		t.Fatalf("updated role = %q/%q", updated.Name, updated.Slug)
	}
}

func TestDeleteRole(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	system := &domain.Role{Name: "Student", Slug: "student", IsSystemRole: true}
	repo.Create(ctx, testOrgID, system, nil) //nolint:errcheck

	err := svc.Delete(ctx, testOrgID, system.ID)
	var derr *util.DomainError
	if !errors.As(err, &derr) || derr.Code != "FORBIDDEN" {
		t.Fatalf("system role delete = %v, want FORBIDDEN", err)
	}

	custom, err := svc.Create(ctx, testOrgID, RoleInput{Name: "Librarian"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, testOrgID, custom.ID); err != nil {
		t.Fatalf("custom role delete: %v", err)
	}
	if _, err := svc.Get(ctx, testOrgID, custom.ID); err == nil {
		t.Fatal("deleted role still readable")
	}
}
