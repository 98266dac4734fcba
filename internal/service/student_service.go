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

// GuardianInput is one guardian row on the admission form.
type GuardianInput struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=20"`
	Gender     string `json:"gender" validate:"required,oneof=male female other"`
	Occupation string `json:"occupation" validate:"max=100"`
	Relation   string `json:"relation" validate:"required,max=50"`
	IsPrimary  bool   `json:"is_primary"`
}

// AdmissionInput is the full admission wizard payload. Step endpoints
// validate a slice of these fields; the final submit validates all of them.
type AdmissionInput struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	MiddleName  string  `json:"middle_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone" validate:"max=20"`
	DateOfBirth string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Address     string  `json:"address" validate:"max=255"`

	Guardians []GuardianInput `json:"guardians" validate:"omitempty,dive"`

	EnrollmentID  string  `json:"enrollment_id" validate:"required,max=50"`
	AdmissionDate string  `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
	LevelID       string  `json:"level_id" validate:"required,uuid"`
	SectionID     *string `json:"section_id" validate:"omitempty,uuid"`
	AcademicYear  string  `json:"academic_year" validate:"required,max=20"`

	PreviousSchool  string `json:"previous_school" validate:"max=150"`
	LastGradePassed string `json:"last_grade_passed" validate:"max=50"`
	CompletionYear  *int   `json:"completion_year" validate:"omitempty,gte=1950"`
	Remarks         string `json:"remarks" validate:"max=255"`
}

// AdmissionWizard defines the fixed step sequence of the admission form.
// Field names address AdmissionInput for partial validation.
var AdmissionWizard = validation.Wizard{
	Steps: []validation.WizardStep{
		{Name: "personal", Fields: []string{
			"FirstName", "MiddleName", "LastName", "Email", "Phone",
			"DateOfBirth", "Gender", "Address",
		}},
		{Name: "guardians", Fields: []string{"Guardians"}},
		{Name: "enrollment", Fields: []string{
			"EnrollmentID", "AdmissionDate", "LevelID", "SectionID", "AcademicYear",
		}},
		{Name: "previous_school", Fields: []string{
			"PreviousSchool", "LastGradePassed", "CompletionYear", "Remarks",
		}},
	},
}

// StudentService coordinates admission and student record management.
type StudentService struct {
	students   repository.StudentRepository
	academics  repository.AcademicsRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
}

// NewStudentService builds the service.
func NewStudentService(students repository.StudentRepository, academics repository.AcademicsRepository, v *validation.Validator, dispatcher events.Dispatcher) *StudentService {
	return &StudentService{
		students:   students,
		academics:  academics,
		validator:  v,
		dispatcher: dispatcher,
	}
}

// ValidateStep checks only the fields belonging to the given wizard step.
// An out-of-range index is rejected, never skipped.
func (s *StudentService) ValidateStep(step int, input AdmissionInput) error {
	return AdmissionWizard.ValidateStep(s.validator, step, input)
}

// Admit validates the whole payload and enrolls the student. The placement
// level must exist in the tenant; the section, when given, must belong to
// that level.
func (s *StudentService) Admit(ctx context.Context, orgID string, input AdmissionInput) (*domain.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	level, err := s.academics.GetLevel(ctx, orgID, input.LevelID)
	if repository.IsNotFound(err) {
		return nil, util.NewValidationError("unknown academic level", map[string]any{"level_id": "not found"})
	}
	if err != nil {
		return nil, err
	}
	if input.SectionID != nil {
		sections, err := s.academics.ListSections(ctx, orgID, level.ID)
		if err != nil {
			return nil, err
		}
		found := false
		for _, section := range sections {
			if section.ID == *input.SectionID {
				found = true
				break
			}
		}
		if !found {
			return nil, util.NewValidationError("section does not belong to the level", map[string]any{"section_id": "not in level"})
		}
	}

	student := &domain.Student{
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
		EnrollmentID:  input.EnrollmentID,
		AdmissionDate: parseDate(input.AdmissionDate),
		Status:        domain.StudentStatusActive,
		Placement: &domain.StudentPlacement{
			LevelID:      input.LevelID,
			SectionID:    input.SectionID,
			AcademicYear: input.AcademicYear,
			IsCurrent:    true,
		},
	}

	var history *domain.AcademicHistory
	if input.PreviousSchool != "" || input.LastGradePassed != "" {
		history = &domain.AcademicHistory{
			PreviousSchool:  input.PreviousSchool,
			LastGradePassed: input.LastGradePassed,
			CompletionYear:  input.CompletionYear,
			Remarks:         input.Remarks,
		}
	}

	guardians := make([]domain.Guardian, 0, len(input.Guardians))
	for _, g := range input.Guardians {
		guardians = append(guardians, domain.Guardian{
			FirstName:  g.FirstName,
			LastName:   g.LastName,
			Phone:      g.Phone,
			Gender:     domain.Gender(g.Gender),
			Occupation: g.Occupation,
			Relation:   g.Relation,
			IsPrimary:  g.IsPrimary,
		})
	}

	if err := s.students.Enroll(ctx, student, history, guardians); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{ //nolint:errcheck
			ID:             uuid.NewString(),
			Type:           events.EventStudentEnrolled,
			OrganizationID: orgID,
			Timestamp:      time.Now().UTC(),
			Payload: events.EnrollmentPayload{
				ProfileID: student.Profile.ID,
				FullName:  student.Profile.FullName(),
			},
		})
	}
	return student, nil
}

// List returns students in the tenant; unactivatedOnly narrows to records
// without a portal account, which feeds the activation screen.
func (s *StudentService) List(ctx context.Context, orgID string, unactivatedOnly bool) ([]*domain.Student, error) {
	return s.students.List(ctx, orgID, unactivatedOnly)
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, orgID, id string) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("student", map[string]any{"id": id})
	}
	return student, err
}

// StudentUpdateInput describes editable student fields.
type StudentUpdateInput struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	MiddleName  string  `json:"middle_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone" validate:"max=20"`
	DateOfBirth string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Address     string  `json:"address" validate:"max=255"`

	Status       string  `json:"status" validate:"required,oneof=active inactive graduated withdrawn"`
	LevelID      string  `json:"level_id" validate:"required,uuid"`
	SectionID    *string `json:"section_id" validate:"omitempty,uuid"`
	AcademicYear string  `json:"academic_year" validate:"required,max=20"`
}

// Update edits a student's profile and current placement.
func (s *StudentService) Update(ctx context.Context, orgID, id string, input StudentUpdateInput) (*domain.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	student, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	student.Profile.FirstName = input.FirstName
	student.Profile.MiddleName = input.MiddleName
	student.Profile.LastName = input.LastName
	student.Profile.Email = input.Email
	student.Profile.Phone = input.Phone
	student.Profile.DateOfBirth = parseDate(input.DateOfBirth)
	student.Profile.Gender = domain.Gender(input.Gender)
	student.Profile.Address = input.Address
	student.Status = domain.StudentStatus(input.Status)
	student.Placement = &domain.StudentPlacement{
		StudentID:    student.ID,
		LevelID:      input.LevelID,
		SectionID:    input.SectionID,
		AcademicYear: input.AcademicYear,
		IsCurrent:    true,
	}

	if err := s.students.Update(ctx, orgID, student); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, orgID, id)
}

// Delete removes a student record and its dependents.
func (s *StudentService) Delete(ctx context.Context, orgID, id string) error {
	err := s.students.Delete(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("student", map[string]any{"id": id})
	}
	return err
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
