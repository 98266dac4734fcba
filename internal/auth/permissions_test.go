package auth

import (
	"testing"

	"github.com/edusekai/platform-api/internal/domain"
)

func TestCheckerOwner(t *testing.T) {
	cases := []struct {
		name      string
		session   domain.SessionUser
		wantOwner bool
	}{
		{
			name:      "owner by active role",
			session:   domain.SessionUser{ActiveRole: domain.RoleSlugOwner},
			wantOwner: true,
		},
		{
			name:      "owner by wildcard permission",
			session:   domain.SessionUser{ActiveRole: "admin", Permissions: []string{domain.PermissionWildcard}},
			wantOwner: true,
		},
		{
			name:      "plain role",
			session:   domain.SessionUser{ActiveRole: "admin", Permissions: []string{domain.PermViewStudent}},
			wantOwner: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewChecker(&tc.session)
			if c.IsOwner() != tc.wantOwner {
				t.Fatalf("IsOwner() = %v, want %v", c.IsOwner(), tc.wantOwner)
			}
		})
	}
}

func TestCheckerCan(t *testing.T) {
	session := &domain.SessionUser{
		ActiveRole:  "admin",
		Permissions: []string{domain.PermViewStudent, domain.PermAddStudent},
	}
	c := NewChecker(session)

	if !c.Can(domain.PermViewStudent) {
		t.Fatal("expected view_student to be granted")
	}
	if c.Can(domain.PermDeleteStudent) {
		t.Fatal("expected delete_student to be denied")
	}

	// Owner sessions pass every codename, including unknown ones.
	owner := NewChecker(&domain.SessionUser{ActiveRole: domain.RoleSlugOwner})
	if !owner.Can("anything_at_all") {
		t.Fatal("owner must pass any permission check")
	}
}
