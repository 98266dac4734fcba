package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edusekai/platform-api/internal/domain"
)

// In-memory repositories for service tests. Single tenant: the orgID
// arguments are accepted and ignored.

type issuedLogin struct {
	UserID    string
	ProfileID string
	RoleID    string
}

type fakeUserRepo struct {
	users  map[string]*domain.User
	issued []issuedLogin
	// issueFailures simulates a transaction rollback for a profile: the
	// error is returned and no user is stored.
	issueFailures map[string]error
	nextID        int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, issueFailures: map[string]error{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (r *fakeUserRepo) IssueLogin(ctx context.Context, _ string, user *domain.User, profileID, roleID string) error {
	if err, ok := r.issueFailures[profileID]; ok {
		return err
	}
	if err := r.Create(ctx, user); err != nil {
		return err
	}
	r.issued = append(r.issued, issuedLogin{UserID: user.ID, ProfileID: profileID, RoleID: roleID})
	return nil
}

type roleAssignment struct {
	UserID string
	RoleID string
}

type fakeRoleRepo struct {
	roles       map[string]*domain.Role
	permissions []*domain.Permission
	assignments []roleAssignment
	nextID      int
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*domain.Role{}}
}

func (r *fakeRoleRepo) Create(_ context.Context, _ string, role *domain.Role, _ []string) error {
	r.nextID++
	role.ID = fmt.Sprintf("role-%d", r.nextID)
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) Update(_ context.Context, _ string, role *domain.Role, _ []string) error {
	if _, ok := r.roles[role.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, _ string, roleID string) error {
	if _, ok := r.roles[roleID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.roles, roleID)
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, _ string, roleID string) (*domain.Role, error) {
	if role, ok := r.roles[roleID]; ok {
		return role, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeRoleRepo) GetBySlug(_ context.Context, _ string, slug string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Slug == slug {
			return role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeRoleRepo) List(_ context.Context, _ string) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *fakeRoleRepo) SlugTaken(_ context.Context, _ string, slug string) (bool, error) {
	_, err := r.GetBySlug(context.Background(), "", slug)
	return err == nil, nil
}

func (r *fakeRoleRepo) SlugsForUser(_ context.Context, _ string, userID string) ([]string, error) {
	var slugs []string
	for _, a := range r.assignments {
		if a.UserID != userID {
			continue
		}
		if role, ok := r.roles[a.RoleID]; ok {
			slugs = append(slugs, role.Slug)
		}
	}
	return slugs, nil
}

func (r *fakeRoleRepo) CodenamesForSlug(_ context.Context, _ string, slug string) ([]string, error) {
	role, err := r.GetBySlug(context.Background(), "", slug)
	if err != nil {
		return nil, err
	}
	codenames := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		codenames = append(codenames, p.Codename)
	}
	return codenames, nil
}

func (r *fakeRoleRepo) AssignRole(_ context.Context, _ string, userID, roleID string) error {
	if _, ok := r.roles[roleID]; !ok {
		return pgx.ErrNoRows
	}
	r.assignments = append(r.assignments, roleAssignment{UserID: userID, RoleID: roleID})
	return nil
}

func (r *fakeRoleRepo) ListPermissions(_ context.Context) ([]*domain.Permission, error) {
	return r.permissions, nil
}

func (r *fakeRoleRepo) PermissionIDsByCodename(_ context.Context, codenames []string) ([]string, error) {
	ids := make([]string, 0, len(codenames))
	for _, codename := range codenames {
		ids = append(ids, "perm-"+codename)
	}
	return ids, nil
}

func (r *fakeRoleRepo) SeedPermissions(_ context.Context, perms []*domain.Permission) error {
	r.permissions = perms
	return nil
}

type fakeStudentRepo struct {
	students map[string]*domain.Student
	pending  []*domain.PendingCredential
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*domain.Student{}}
}

func (r *fakeStudentRepo) Enroll(_ context.Context, student *domain.Student, _ *domain.AcademicHistory, _ []domain.Guardian) error {
	if student.ID == "" {
		student.ID = fmt.Sprintf("student-%d", len(r.students)+1)
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) List(_ context.Context, _ string, _ bool) ([]*domain.Student, error) {
	out := make([]*domain.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, _ string, id string) (*domain.Student, error) {
	if s, ok := r.students[id]; ok {
		return s, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStudentRepo) Update(_ context.Context, _ string, student *domain.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, _ string, id string) error {
	if _, ok := r.students[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) ListPendingCredentials(_ context.Context, _ string) ([]*domain.PendingCredential, error) {
	return r.pending, nil
}

type fakeStaffRepo struct {
	members map[string]*domain.StaffMember
	pending []*domain.PendingCredential
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: map[string]*domain.StaffMember{}}
}

func (r *fakeStaffRepo) Onboard(_ context.Context, staff *domain.StaffMember, _ *domain.Instructor) error {
	if staff.ID == "" {
		staff.ID = fmt.Sprintf("staff-%d", len(r.members)+1)
	}
	r.members[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) List(_ context.Context, _ string) ([]*domain.StaffMember, error) {
	out := make([]*domain.StaffMember, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeStaffRepo) ListInstructors(_ context.Context, _ string) ([]*domain.Instructor, error) {
	return nil, nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, _ string, id string) (*domain.StaffMember, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) GetInstructorByID(_ context.Context, _ string, _ string) (*domain.Instructor, error) {
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) Update(_ context.Context, _ string, staff *domain.StaffMember) error {
	if _, ok := r.members[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.members[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, _ string, id string) error {
	if _, ok := r.members[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.members, id)
	return nil
}

func (r *fakeStaffRepo) ListPendingCredentials(_ context.Context, _ string) ([]*domain.PendingCredential, error) {
	return r.pending, nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("profile-%d", len(r.profiles)+1)
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, _ string, id string) (*domain.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, _ string, userID string) (*domain.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakePaymentRepo struct {
	payments map[string]*domain.Payment
	statuses []domain.PaymentStatus
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*domain.Payment{}}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = fmt.Sprintf("payment-%d", len(r.payments)+1)
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByTransactionUUID(_ context.Context, transactionUUID string) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.TransactionUUID == transactionUUID {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePaymentRepo) SetStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	p, ok := r.payments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Status = status
	r.statuses = append(r.statuses, status)
	return nil
}

type fakeOrgRepo struct {
	orgs     map[string]*domain.Organization
	profiles map[string]*domain.InstitutionProfile
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		orgs:     map[string]*domain.Organization{},
		profiles: map[string]*domain.InstitutionProfile{},
	}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	if org.ID == "" {
		org.ID = fmt.Sprintf("org-%d", len(r.orgs)+1)
	}
	r.orgs[org.Subdomain] = org
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*domain.Organization, error) {
	for _, org := range r.orgs {
		if org.ID == id {
			return org, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOrgRepo) GetBySubdomain(_ context.Context, subdomain string) (*domain.Organization, error) {
	if org, ok := r.orgs[subdomain]; ok {
		return org, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOrgRepo) SubdomainTaken(_ context.Context, subdomain string) (bool, error) {
	_, ok := r.orgs[subdomain]
	return ok, nil
}

func (r *fakeOrgRepo) GetInstitutionProfile(_ context.Context, orgID string) (*domain.InstitutionProfile, error) {
	if p, ok := r.profiles[orgID]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOrgRepo) UpsertInstitutionProfile(_ context.Context, profile *domain.InstitutionProfile) error {
	r.profiles[profile.OrganizationID] = profile
	return nil
}
