package service

import (
	"context"

	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/pkg/util"
)

// ProgramInput describes program create/update payloads.
type ProgramInput struct {
	Name        string `json:"name" validate:"required,max=150"`
	Code        string `json:"code" validate:"required,max=20"`
	Description string `json:"description" validate:"max=255"`
	IsActive    bool   `json:"is_active"`
}

// LevelInput describes level create/update payloads.
type LevelInput struct {
	ProgramID string `json:"program_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=100"`
	Order     int    `json:"order" validate:"gte=0"`
}

// SectionInput describes section create/update payloads.
type SectionInput struct {
	LevelID  string `json:"level_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,max=50"`
	Capacity int    `json:"capacity" validate:"gt=0,lte=500"`
}

// SubjectInput describes subject create/update payloads.
type SubjectInput struct {
	LevelID     string  `json:"level_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,max=150"`
	Code        string  `json:"code" validate:"required,max=20"`
	Credits     float64 `json:"credits" validate:"gte=0,lte=50"`
	IsElective  bool    `json:"is_elective"`
	Description string  `json:"description" validate:"max=255"`
}

// AssignmentInput binds an instructor to a section and subject.
type AssignmentInput struct {
	SectionID    string  `json:"section_id" validate:"required,uuid"`
	SubjectID    string  `json:"subject_id" validate:"required,uuid"`
	InstructorID *string `json:"instructor_id" validate:"omitempty,uuid"`
}

// AcademicsService manages the tenant's academic structure.
type AcademicsService struct {
	academics repository.AcademicsRepository
	staff     repository.StaffRepository
	validator *validation.Validator
}

// NewAcademicsService builds the service.
func NewAcademicsService(academics repository.AcademicsRepository, staff repository.StaffRepository, v *validation.Validator) *AcademicsService {
	return &AcademicsService{academics: academics, staff: staff, validator: v}
}

// ListPrograms returns the tenant's programs.
func (s *AcademicsService) ListPrograms(ctx context.Context, orgID string) ([]*domain.Program, error) {
	return s.academics.ListPrograms(ctx, orgID)
}

// CreateProgram adds a program.
func (s *AcademicsService) CreateProgram(ctx context.Context, orgID string, input ProgramInput) (*domain.Program, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	program := &domain.Program{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		IsActive:    input.IsActive,
	}
	if err := s.academics.CreateProgram(ctx, orgID, program); err != nil {
		return nil, err
	}
	return program, nil
}

// UpdateProgram edits a program.
func (s *AcademicsService) UpdateProgram(ctx context.Context, orgID, id string, input ProgramInput) (*domain.Program, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	program, err := s.academics.GetProgram(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("program", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	program.Name = input.Name
	program.Code = input.Code
	program.Description = input.Description
	program.IsActive = input.IsActive
	if err := s.academics.UpdateProgram(ctx, orgID, program); err != nil {
		return nil, err
	}
	return program, nil
}

// DeleteProgram removes a program and its levels.
func (s *AcademicsService) DeleteProgram(ctx context.Context, orgID, id string) error {
	err := s.academics.DeleteProgram(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("program", map[string]any{"id": id})
	}
	return err
}

// ListLevels returns the levels of a program in display order.
func (s *AcademicsService) ListLevels(ctx context.Context, orgID, programID string) ([]*domain.AcademicLevel, error) {
	return s.academics.ListLevels(ctx, orgID, programID)
}

// CreateLevel adds a level to a program.
func (s *AcademicsService) CreateLevel(ctx context.Context, orgID string, input LevelInput) (*domain.AcademicLevel, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.academics.GetProgram(ctx, orgID, input.ProgramID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewValidationError("unknown program", map[string]any{"program_id": "not found"})
		}
		return nil, err
	}
	level := &domain.AcademicLevel{
		ProgramID: input.ProgramID,
		Name:      input.Name,
		Order:     input.Order,
	}
	if err := s.academics.CreateLevel(ctx, orgID, level); err != nil {
		return nil, err
	}
	return level, nil
}

// UpdateLevel edits a level.
func (s *AcademicsService) UpdateLevel(ctx context.Context, orgID, id string, input LevelInput) (*domain.AcademicLevel, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	level, err := s.academics.GetLevel(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("level", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	level.Name = input.Name
	level.Order = input.Order
	if err := s.academics.UpdateLevel(ctx, orgID, level); err != nil {
		return nil, err
	}
	return level, nil
}

// DeleteLevel removes a level.
func (s *AcademicsService) DeleteLevel(ctx context.Context, orgID, id string) error {
	err := s.academics.DeleteLevel(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("level", map[string]any{"id": id})
	}
	return err
}

// ListSections returns the sections of a level.
func (s *AcademicsService) ListSections(ctx context.Context, orgID, levelID string) ([]*domain.Section, error) {
	return s.academics.ListSections(ctx, orgID, levelID)
}

// CreateSection adds a section to a level.
func (s *AcademicsService) CreateSection(ctx context.Context, orgID string, input SectionInput) (*domain.Section, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.academics.GetLevel(ctx, orgID, input.LevelID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewValidationError("unknown level", map[string]any{"level_id": "not found"})
		}
		return nil, err
	}
	section := &domain.Section{
		LevelID:  input.LevelID,
		Name:     input.Name,
		Capacity: input.Capacity,
	}
	if err := s.academics.CreateSection(ctx, orgID, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection edits a section.
func (s *AcademicsService) UpdateSection(ctx context.Context, orgID, id string, input SectionInput) (*domain.Section, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	section := &domain.Section{
		ID:       id,
		LevelID:  input.LevelID,
		Name:     input.Name,
		Capacity: input.Capacity,
	}
	err := s.academics.UpdateSection(ctx, orgID, section)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("section", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes a section.
func (s *AcademicsService) DeleteSection(ctx context.Context, orgID, id string) error {
	err := s.academics.DeleteSection(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("section", map[string]any{"id": id})
	}
	return err
}

// ListSubjects returns the subjects of a level.
func (s *AcademicsService) ListSubjects(ctx context.Context, orgID, levelID string) ([]*domain.Subject, error) {
	return s.academics.ListSubjects(ctx, orgID, levelID)
}

// CreateSubject adds a subject to a level.
func (s *AcademicsService) CreateSubject(ctx context.Context, orgID string, input SubjectInput) (*domain.Subject, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.academics.GetLevel(ctx, orgID, input.LevelID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewValidationError("unknown level", map[string]any{"level_id": "not found"})
		}
		return nil, err
	}
	subject := &domain.Subject{
		LevelID:     input.LevelID,
		Name:        input.Name,
		Code:        input.Code,
		Credits:     input.Credits,
		IsElective:  input.IsElective,
		Description: input.Description,
	}
	if err := s.academics.CreateSubject(ctx, orgID, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// UpdateSubject edits a subject.
func (s *AcademicsService) UpdateSubject(ctx context.Context, orgID, id string, input SubjectInput) (*domain.Subject, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	subject := &domain.Subject{
		ID:          id,
		LevelID:     input.LevelID,
		Name:        input.Name,
		Code:        input.Code,
		Credits:     input.Credits,
		IsElective:  input.IsElective,
		Description: input.Description,
	}
	err := s.academics.UpdateSubject(ctx, orgID, subject)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("subject", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject.
func (s *AcademicsService) DeleteSubject(ctx context.Context, orgID, id string) error {
	err := s.academics.DeleteSubject(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("subject", map[string]any{"id": id})
	}
	return err
}

// ListAssignments returns the teaching assignments of a section.
func (s *AcademicsService) ListAssignments(ctx context.Context, orgID, sectionID string) ([]*domain.TeachingAssignment, error) {
	return s.academics.ListAssignments(ctx, orgID, sectionID)
}

// AssignInstructor creates or replaces the assignment for a section and
// subject pair. The instructor, when set, must exist in the tenant.
func (s *AcademicsService) AssignInstructor(ctx context.Context, orgID string, input AssignmentInput) (*domain.TeachingAssignment, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if input.InstructorID != nil {
		if _, err := s.staff.GetInstructorByID(ctx, orgID, *input.InstructorID); err != nil {
			if repository.IsNotFound(err) {
				return nil, util.NewValidationError("unknown instructor", map[string]any{"instructor_id": "not found"})
			}
			return nil, err
		}
	}
	assignment := &domain.TeachingAssignment{
		SectionID:    input.SectionID,
		SubjectID:    input.SubjectID,
		InstructorID: input.InstructorID,
	}
	if err := s.academics.UpsertAssignment(ctx, orgID, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// RemoveAssignment deletes a teaching assignment.
func (s *AcademicsService) RemoveAssignment(ctx context.Context, orgID, id string) error {
	err := s.academics.DeleteAssignment(ctx, orgID, id)
	if repository.IsNotFound(err) {
		return util.NewNotFound("assignment", map[string]any{"id": id})
	}
	return err
}
