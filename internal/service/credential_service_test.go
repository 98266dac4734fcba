package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/credentials"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/pkg/util"
)

const testOrgID = "org-1"

type credentialFixture struct {
	svc      *CredentialService
	students *fakeStudentRepo
	staff    *fakeStaffRepo
	users    *fakeUserRepo
	roles    *fakeRoleRepo
	profiles *fakeProfileRepo
}

func newCredentialFixture() *credentialFixture {
	f := &credentialFixture{
		students: newFakeStudentRepo(),
		staff:    newFakeStaffRepo(),
		users:    newFakeUserRepo(),
		roles:    newFakeRoleRepo(),
		profiles: newFakeProfileRepo(),
	}
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: 4}}
	f.svc = NewCredentialService(cfg, CredentialDependencies{
		StudentRepo: f.students,
		StaffRepo:   f.staff,
		UserRepo:    f.users,
		RoleRepo:    f.roles,
	})
	return f
}

func (f *credentialFixture) addRole(slug string) {
	f.roles.Create(context.Background(), testOrgID, &domain.Role{Name: slug, Slug: slug}, nil) //nolint:errcheck
}

func (f *credentialFixture) addStudent(id, first, last string) {
	profile := &domain.Profile{FirstName: first, LastName: last}
	f.profiles.Create(context.Background(), profile) //nolint:errcheck
	f.students.students[id] = &domain.Student{ID: id, Profile: profile}
}

func (f *credentialFixture) addStaff(id, first, last string) {
	profile := &domain.Profile{FirstName: first, LastName: last}
	f.profiles.Create(context.Background(), profile) //nolint:errcheck
	f.staff.members[id] = &domain.StaffMember{ID: id, Profile: profile}
}

func TestActivateStudentsSequential(t *testing.T) {
	f := newCredentialFixture()
	f.addRole("student")

	f.addStudent("s1", "Anita", "Sharma")
	f.addStudent("s3", "Bikash", "Thapa")
	activatedUser := "user-existing"
	f.students.students["s3"].Profile.UserID = &activatedUser
	f.addStudent("s4", "Anita", "Sharma")

	result, err := f.svc.ActivateStudents(context.Background(), testOrgID, []string{"s1", "s2", "s3", "s4"})
	if err != nil {
		t.Fatalf("ActivateStudents: %v", err)
	}

	if len(result.Activated) != 2 {
		t.Fatalf("activated %d items, want 2: %+v", len(result.Activated), result.Activated)
	}
	first, second := result.Activated[0], result.Activated[1]
	if first.Index != 0 || first.RecordID != "s1" || first.Username != "anitasharma" {
		t.Fatalf("first activation = %+v", first)
	}
	// Same name as s1; the username gets the next free numeric suffix.
	if second.Index != 3 || second.RecordID != "s4" || second.Username != "anitasharma2" {
		t.Fatalf("second activation = %+v", second)
	}
	if len(first.InitialPassword) != credentials.PasswordLength {
		t.Fatalf("initial password %q, want length %d", first.InitialPassword, credentials.PasswordLength)
	}

	if len(result.Failures) != 2 {
		t.Fatalf("failures %+v, want 2", result.Failures)
	}
	if result.Failures[0].Index != 1 || result.Failures[0].RecordID != "s2" || result.Failures[0].Error != "student not found" {
		t.Fatalf("missing-record failure = %+v", result.Failures[0])
	}
	if result.Failures[1].Index != 2 || !strings.Contains(result.Failures[1].Error, "already activated") {
		t.Fatalf("already-activated failure = %+v", result.Failures[1])
	}

	for _, cred := range result.Activated {
		user, err := f.users.GetByID(context.Background(), cred.UserID)
		if err != nil {
			t.Fatalf("GetByID(%s): %v", cred.UserID, err)
		}
		if !user.NeedsPasswordChange {
			t.Fatalf("user %s not locked behind password change", user.Username)
		}
		if user.InitialPasswordDisplay == nil || *user.InitialPasswordDisplay != cred.InitialPassword {
			t.Fatalf("user %s missing stored initial password", user.Username)
		}
	}
	if len(f.users.issued) != 2 {
		t.Fatalf("issued logins = %d, want 2", len(f.users.issued))
	}
}

func TestActivateStudentsFailedItemLeavesNoState(t *testing.T) {
	f := newCredentialFixture()
	f.addRole("student")
	f.addStudent("s1", "Anita", "Sharma")
	f.addStudent("s2", "Anita", "Sharma")
	f.users.issueFailures[f.students.students["s1"].Profile.ID] = errors.New("profile already linked")

	result, err := f.svc.ActivateStudents(context.Background(), testOrgID, []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("ActivateStudents: %v", err)
	}

	if len(result.Failures) != 1 || result.Failures[0].Index != 0 || result.Failures[0].RecordID != "s1" {
		t.Fatalf("failures = %+v, want one at index 0", result.Failures)
	}
	// The failed item's rolled-back login must not persist a user row.
	if len(f.users.users) != 1 {
		t.Fatalf("%d user rows exist, want only the successful item's", len(f.users.users))
	}
	// Nor claim its username: the same name on the next item still gets
	// the unsuffixed base.
	if len(result.Activated) != 1 || result.Activated[0].Username != "anitasharma" {
		t.Fatalf("activated = %+v, want username anitasharma", result.Activated)
	}
	if len(f.users.issued) != 1 || f.users.issued[0].ProfileID != f.students.students["s2"].Profile.ID {
		t.Fatalf("issued logins = %+v, want only s2's", f.users.issued)
	}
}

func TestActivateStaffRejectsMissingRoleUpFront(t *testing.T) {
	f := newCredentialFixture()
	f.addRole("instructor")
	f.addStaff("m1", "Sita", "Rai")
	f.addStaff("m2", "Hari", "Lama")

	_, err := f.svc.ActivateStaff(context.Background(), testOrgID, []StaffActivationItem{
		{StaffID: "m1", RoleSlug: "instructor"},
		{StaffID: "m2"},
	})
	if err == nil {
		t.Fatal("ActivateStaff accepted an item without a role")
	}
	var derr *util.DomainError
	if !errors.As(err, &derr) || derr.Code != "VALIDATION_FAILED" {
		t.Fatalf("error = %v, want VALIDATION_FAILED", err)
	}
	if _, ok := derr.Details["items[1].role_slug"]; !ok {
		t.Fatalf("details = %v, want items[1].role_slug", derr.Details)
	}
	// Rejection happens before any item is processed.
	if len(f.users.users) != 0 {
		t.Fatalf("%d users created despite batch rejection", len(f.users.users))
	}
}

func TestActivateStaffContinuesPastUnknownRole(t *testing.T) {
	f := newCredentialFixture()
	f.addRole("instructor")
	f.addStaff("m1", "Sita", "Rai")
	f.addStaff("m2", "Hari", "Lama")

	result, err := f.svc.ActivateStaff(context.Background(), testOrgID, []StaffActivationItem{
		{StaffID: "m1", RoleSlug: "librarian"},
		{StaffID: "m2", RoleSlug: "instructor"},
	})
	if err != nil {
		t.Fatalf("ActivateStaff: %v", err)
	}
	if len(result.Failures) != 1 || result.Failures[0].Index != 0 {
		t.Fatalf("failures = %+v, want one at index 0", result.Failures)
	}
	if !strings.Contains(result.Failures[0].Error, `role "librarian" not found`) {
		t.Fatalf("failure message = %q", result.Failures[0].Error)
	}
	if len(result.Activated) != 1 || result.Activated[0].Index != 1 || result.Activated[0].Username != "harilama" {
		t.Fatalf("activated = %+v", result.Activated)
	}
}

func TestDistributionListNewestFirst(t *testing.T) {
	f := newCredentialFixture()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f.students.pending = []*domain.PendingCredential{
		{Username: "middle", Kind: domain.CredentialKindStudent, IssuedAt: base.Add(time.Hour)},
	}
	f.staff.pending = []*domain.PendingCredential{
		{Username: "newest", Kind: domain.CredentialKindStaff, IssuedAt: base.Add(2 * time.Hour)},
		{Username: "oldest", Kind: domain.CredentialKindStaff, IssuedAt: base},
	}

	list, err := f.svc.DistributionList(context.Background(), testOrgID)
	if err != nil {
		t.Fatalf("DistributionList: %v", err)
	}
	var got []string
	for _, cred := range list {
		got = append(got, cred.Username)
	}
	want := []string{"newest", "middle", "oldest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
