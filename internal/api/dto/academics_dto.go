package dto

import "github.com/edusekai/platform-api/internal/domain"

// ProgramResponse is the program shape.
type ProgramResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// FromProgram maps a domain program.
func FromProgram(p *domain.Program) *ProgramResponse {
	return &ProgramResponse{ID: p.ID, Name: p.Name, Code: p.Code, Description: p.Description, IsActive: p.IsActive}
}

// FromPrograms maps a program list.
func FromPrograms(programs []*domain.Program) []*ProgramResponse {
	out := make([]*ProgramResponse, 0, len(programs))
	for _, p := range programs {
		out = append(out, FromProgram(p))
	}
	return out
}

// LevelResponse is the level shape.
type LevelResponse struct {
	ID        string `json:"id"`
	ProgramID string `json:"program_id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
}

// FromLevel maps a domain level.
func FromLevel(l *domain.AcademicLevel) *LevelResponse {
	return &LevelResponse{ID: l.ID, ProgramID: l.ProgramID, Name: l.Name, Order: l.Order}
}

// FromLevels maps a level list.
func FromLevels(levels []*domain.AcademicLevel) []*LevelResponse {
	out := make([]*LevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, FromLevel(l))
	}
	return out
}

// SectionResponse is the section shape.
type SectionResponse struct {
	ID       string `json:"id"`
	LevelID  string `json:"level_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// FromSection maps a domain section.
func FromSection(s *domain.Section) *SectionResponse {
	return &SectionResponse{ID: s.ID, LevelID: s.LevelID, Name: s.Name, Capacity: s.Capacity}
}

// FromSections maps a section list.
func FromSections(sections []*domain.Section) []*SectionResponse {
	out := make([]*SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, FromSection(s))
	}
	return out
}

// SubjectResponse is the subject shape.
type SubjectResponse struct {
	ID          string  `json:"id"`
	LevelID     string  `json:"level_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Credits     float64 `json:"credits"`
	IsElective  bool    `json:"is_elective"`
	Description string  `json:"description,omitempty"`
}

// FromSubject maps a domain subject.
func FromSubject(s *domain.Subject) *SubjectResponse {
	return &SubjectResponse{
		ID: s.ID, LevelID: s.LevelID, Name: s.Name, Code: s.Code,
		Credits: s.Credits, IsElective: s.IsElective, Description: s.Description,
	}
}

// FromSubjects maps a subject list.
func FromSubjects(subjects []*domain.Subject) []*SubjectResponse {
	out := make([]*SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, FromSubject(s))
	}
	return out
}

// AssignmentResponse is the teaching-assignment shape.
type AssignmentResponse struct {
	ID           string  `json:"id"`
	SectionID    string  `json:"section_id"`
	SubjectID    string  `json:"subject_id"`
	InstructorID *string `json:"instructor_id,omitempty"`
}

// FromAssignment maps a domain assignment.
func FromAssignment(a *domain.TeachingAssignment) *AssignmentResponse {
	return &AssignmentResponse{ID: a.ID, SectionID: a.SectionID, SubjectID: a.SubjectID, InstructorID: a.InstructorID}
}

// FromAssignments maps an assignment list.
func FromAssignments(assignments []*domain.TeachingAssignment) []*AssignmentResponse {
	out := make([]*AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, FromAssignment(a))
	}
	return out
}
