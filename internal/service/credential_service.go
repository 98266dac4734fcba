package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/credentials"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/pkg/util"
)

// ActivatedCredential is one successfully issued login. InitialPassword is
// returned exactly once here and stored for the distribution list until the
// owner changes it.
type ActivatedCredential struct {
	Index           int    `json:"index"`
	RecordID        string `json:"record_id"`
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	InitialPassword string `json:"initial_password"`
	FullName        string `json:"full_name"`
}

// ActivationFailure is one failed item, reported at its submitted position.
type ActivationFailure struct {
	Index    int    `json:"index"`
	RecordID string `json:"record_id"`
	Error    string `json:"error"`
}

// BulkActivationResult collects per-item outcomes of one activation run.
type BulkActivationResult struct {
	Activated []ActivatedCredential `json:"activated"`
	Failures  []ActivationFailure   `json:"failures"`
}

// StaffActivationItem selects one staff member and the role to grant.
type StaffActivationItem struct {
	StaffID  string `json:"staff_id" validate:"required,uuid"`
	RoleSlug string `json:"role_slug" validate:"required"`
}

// CredentialService issues portal logins for students and staff and serves
// the initial-credential distribution list.
type CredentialService struct {
	students   repository.StudentRepository
	staff      repository.StaffRepository
	users      repository.UserRepository
	roles      repository.RoleRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// CredentialDependencies bundles collaborators for the credential service.
type CredentialDependencies struct {
	StudentRepo repository.StudentRepository
	StaffRepo   repository.StaffRepository
	UserRepo    repository.UserRepository
	RoleRepo    repository.RoleRepository
	Dispatcher  events.Dispatcher
}

// NewCredentialService builds the service.
func NewCredentialService(cfg config.Config, deps CredentialDependencies) *CredentialService {
	return &CredentialService{
		students:   deps.StudentRepo,
		staff:      deps.StaffRepo,
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// ActivateStudents issues logins for the given students, strictly in the
// submitted order. A failing item is recorded at its index and processing
// continues with the next one; earlier successes are never rolled back.
func (s *CredentialService) ActivateStudents(ctx context.Context, orgID string, studentIDs []string) (*BulkActivationResult, error) {
	result := &BulkActivationResult{
		Activated: []ActivatedCredential{},
		Failures:  []ActivationFailure{},
	}

	for i, studentID := range studentIDs {
		student, err := s.students.GetByID(ctx, orgID, studentID)
		if err != nil {
			result.Failures = append(result.Failures, ActivationFailure{
				Index: i, RecordID: studentID, Error: activationErrorMessage(err, "student not found"),
			})
			continue
		}
		issued, err := s.issue(ctx, orgID, student.Profile, "student")
		if err != nil {
			result.Failures = append(result.Failures, ActivationFailure{
				Index: i, RecordID: studentID, Error: activationErrorMessage(err, "activation failed"),
			})
			continue
		}
		issued.Index = i
		issued.RecordID = studentID
		result.Activated = append(result.Activated, *issued)
	}

	s.publishIssued(ctx, orgID, domain.CredentialKindStudent, result)
	return result, nil
}

// ActivateStaff issues logins for the given staff members. Every item must
// name the role to grant; a batch with any missing role is rejected before
// any item is processed.
func (s *CredentialService) ActivateStaff(ctx context.Context, orgID string, items []StaffActivationItem) (*BulkActivationResult, error) {
	for i, item := range items {
		if item.RoleSlug == "" {
			return nil, util.NewValidationError("every staff member needs a role",
				map[string]any{fmt.Sprintf("items[%d].role_slug", i): "required"})
		}
	}

	result := &BulkActivationResult{
		Activated: []ActivatedCredential{},
		Failures:  []ActivationFailure{},
	}

	for i, item := range items {
		staff, err := s.staff.GetByID(ctx, orgID, item.StaffID)
		if err != nil {
			result.Failures = append(result.Failures, ActivationFailure{
				Index: i, RecordID: item.StaffID, Error: activationErrorMessage(err, "staff member not found"),
			})
			continue
		}
		issued, err := s.issue(ctx, orgID, staff.Profile, item.RoleSlug)
		if err != nil {
			result.Failures = append(result.Failures, ActivationFailure{
				Index: i, RecordID: item.StaffID, Error: activationErrorMessage(err, "activation failed"),
			})
			continue
		}
		issued.Index = i
		issued.RecordID = item.StaffID
		result.Activated = append(result.Activated, *issued)
	}

	s.publishIssued(ctx, orgID, domain.CredentialKindStaff, result)
	return result, nil
}

// issue creates the login for one profile: synthesized username with a
// numeric suffix on collision, a generated initial password stored in clear
// for the distribution list, and the role assignment. Create, attach and
// grant happen in one transaction; a failed item claims no username and
// leaves no user row behind.
func (s *CredentialService) issue(ctx context.Context, orgID string, profile *domain.Profile, roleSlug string) (*ActivatedCredential, error) {
	if profile == nil {
		return nil, fmt.Errorf("record has no profile")
	}
	if profile.Activated() {
		return nil, fmt.Errorf("already activated")
	}

	role, err := s.roles.GetBySlug(ctx, orgID, roleSlug)
	if repository.IsNotFound(err) {
		return nil, fmt.Errorf("role %q not found", roleSlug)
	}
	if err != nil {
		return nil, err
	}

	username, err := s.availableUsername(ctx, profile)
	if err != nil {
		return nil, err
	}
	password, err := credentials.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:               username,
		Email:                  profile.Email,
		PasswordHash:           hash,
		IsActive:               true,
		NeedsPasswordChange:    true,
		InitialPasswordDisplay: &password,
	}
	if err := s.users.IssueLogin(ctx, orgID, user, profile.ID, role.ID); err != nil {
		return nil, err
	}

	return &ActivatedCredential{
		UserID:          user.ID,
		Username:        username,
		InitialPassword: password,
		FullName:        profile.FullName(),
	}, nil
}

// availableUsername derives the base username from the profile names and
// appends an increasing numeric suffix until it is free.
func (s *CredentialService) availableUsername(ctx context.Context, profile *domain.Profile) (string, error) {
	base := credentials.SynthesizeUsername(profile.FirstName, profile.MiddleName, profile.LastName)
	if base == "" {
		return "", fmt.Errorf("profile has no usable name")
	}
	username := base
	for i := 2; ; i++ {
		taken, err := s.users.UsernameTaken(ctx, username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
}

// DistributionList returns every credential whose initial password is still
// outstanding, newest first, across students, staff and instructors.
func (s *CredentialService) DistributionList(ctx context.Context, orgID string) ([]*domain.PendingCredential, error) {
	studentCreds, err := s.students.ListPendingCredentials(ctx, orgID)
	if err != nil {
		return nil, err
	}
	staffCreds, err := s.staff.ListPendingCredentials(ctx, orgID)
	if err != nil {
		return nil, err
	}
	merged := append(studentCreds, staffCreds...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].IssuedAt.After(merged[j].IssuedAt)
	})
	return merged, nil
}

func (s *CredentialService) publishIssued(ctx context.Context, orgID string, kind domain.CredentialKind, result *BulkActivationResult) {
	if s.dispatcher == nil || len(result.Activated) == 0 && len(result.Failures) == 0 {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{ //nolint:errcheck
		ID:             uuid.NewString(),
		Type:           events.EventCredentialsIssued,
		OrganizationID: orgID,
		Timestamp:      time.Now().UTC(),
		Payload: events.CredentialsIssuedPayload{
			Kind:      kind,
			Activated: len(result.Activated),
			Failed:    len(result.Failures),
		},
	})
}

func activationErrorMessage(err error, fallback string) string {
	if repository.IsNotFound(err) {
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
