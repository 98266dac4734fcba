package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/pkg/util"
)

// OnboardingInput is the full staff onboarding wizard payload. Setting
// IsInstructor requires the teaching fields of the final step.
type OnboardingInput struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	MiddleName  string  `json:"middle_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone" validate:"max=20"`
	DateOfBirth string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Address     string  `json:"address" validate:"max=255"`

	EmployeeID      string `json:"employee_id" validate:"required,max=50"`
	Designation     string `json:"designation" validate:"required,max=100"`
	Department      string `json:"department" validate:"max=100"`
	JoiningDate     string `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	Qualification   string `json:"qualification" validate:"max=150"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0,lte=60"`

	IsInstructor   bool   `json:"is_instructor"`
	Specialization string `json:"specialization" validate:"required_if=IsInstructor true,max=150"`
	LicenseNumber  string `json:"license_number" validate:"max=50"`
	Bio            string `json:"bio" validate:"max=500"`
}

// OnboardingWizard defines the fixed step sequence of the staff form.
var OnboardingWizard = validation.Wizard{
	Steps: []validation.WizardStep{
		{Name: "personal", Fields: []string{
			"FirstName", "MiddleName", "LastName", "Email", "Phone",
			"DateOfBirth", "Gender", "Address",
		}},
		{Name: "employment", Fields: []string{
			"EmployeeID", "Designation", "Department", "JoiningDate",
			"Qualification", "ExperienceYears",
		}},
		{Name: "teaching", Fields: []string{
			"IsInstructor", "Specialization", "LicenseNumber", "Bio",
		}},
	},
}

// StaffService coordinates staff onboarding and record management.
type StaffService struct {
	staff      repository.StaffRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
}

// NewStaffService builds the service.
func NewStaffService(staff repository.StaffRepository, v *validation.Validator, dispatcher events.Dispatcher) *StaffService {
	return &StaffService{staff: staff, validator: v, dispatcher: dispatcher}
}

// ValidateStep checks only the fields belonging to the given wizard step.
func (s *StaffService) ValidateStep(step int, input OnboardingInput) error {
	return OnboardingWizard.ValidateStep(s.validator, step, input)
}

// Onboard validates the whole payload and creates the staff record, plus the
// instructor specialization when requested.
func (s *StaffService) Onboard(ctx context.Context, orgID string, input OnboardingInput) (*domain.StaffMember, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		Profile: &domain.Profile{
			OrganizationID: orgID,
			FirstName:      input.FirstName,
			MiddleName:     input.MiddleName,
			LastName:       input.LastName,
			Email:          input.Email,
			Phone:          input.Phone,
			DateOfBirth:    parseDate(input.DateOfBirth),
			Gender:         domain.Gender(input.Gender),
			Address:        input.Address,
		},
		EmployeeID:      input.EmployeeID,
		Designation:     input.Designation,
		Department:      input.Department,
		JoiningDate:     parseDate(input.JoiningDate),
		IsActive:        true,
		Qualification:   input.Qualification,
		ExperienceYears: input.ExperienceYears,
	}

	var instructor *domain.Instructor
	if input.IsInstructor {
		instructor = &domain.Instructor{
			Specialization: input.Specialization,
			LicenseNumber:  input.LicenseNumber,
			Bio:            input.Bio,
		}
	}

	if err := s.staff.Onboard(ctx, staff, instructor); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{ //nolint:errcheck
			ID:             uuid.NewString(),
			Type:           events.EventStaffMemberOnboarded,
			OrganizationID: orgID,
			Timestamp:      time.Now().UTC(),
			Payload: events.EnrollmentPayload{
				ProfileID: staff.Profile.ID,
				FullName:  staff.Profile.FullName(),
			},
		})
	}
	return staff, nil
}

// List returns staff members in the tenant.
func (s *StaffService) List(ctx context.Context, orgID string) ([]*domain.StaffMember, error) {
	return s.staff.List(ctx, orgID)
}

// ListInstructors returns the teaching subset with their specializations.
func (s *StaffService) ListInstructors(ctx context.Context, orgID string) ([]*domain.Instructor, error) {
	return s.staff.ListInstructors(ctx, orgID)
}

// Get returns one staff member.
func (s *StaffService) Get(ctx context.Context, orgID, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("staff member", map[string]any{"id": id})
	}
	return staff, err
}

// StaffUpdateInput describes editable staff fields.
type StaffUpdateInput struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	MiddleName  string  `json:"middle_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone" validate:"max=20"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Address     string  `json:"address" validate:"max=255"`
	Designation string  `json:"designation" validate:"required,max=100"`
	Department  string  `json:"department" validate:"max=100"`
	IsActive    bool    `json:"is_active"`
}

// Update edits a staff member's profile and employment record.
func (s *StaffService) Update(ctx context.Context, orgID, id string, input StaffUpdateInput) (*domain.StaffMember, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	staff, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	staff.Profile.FirstName = input.FirstName
	staff.Profile.MiddleName = input.MiddleName
	staff.Profile.LastName = input.LastName
	staff.Profile.Email = input.Email
	staff.Profile.Phone = input.Phone
	staff.Profile.Gender = domain.Gender(input.Gender)
	staff.Profile.Address = input.Address
	staff.Designation = input.Designation
	staff.Department = input.Department
	staff.IsActive = input.IsActive

	if err := s.staff.Update(ctx, orgID, staff); err != nil {
		return nil, err
	}
	return s.staff.GetByID(ctx, orgID, id)
}

// Delete removes a staff record and its dependents.
func (s *StaffService) Delete(ctx context.Context, orgID, id string) error {
	err := s.staff.Delete(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("staff member", map[string]any{"id": id})
	}
	return err
}
