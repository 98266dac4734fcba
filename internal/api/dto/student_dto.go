package dto

import "github.com/edusekai/platform-api/internal/domain"

// PlacementResponse is the student's current level and section.
type PlacementResponse struct {
	LevelID      string  `json:"level_id"`
	LevelName    string  `json:"level_name"`
	SectionID    *string `json:"section_id,omitempty"`
	SectionName  string  `json:"section_name,omitempty"`
	AcademicYear string  `json:"academic_year"`
}

// StudentResponse is the student list/detail shape.
type StudentResponse struct {
	ID            string             `json:"id"`
	EnrollmentID  string             `json:"enrollment_id"`
	AdmissionDate *string            `json:"admission_date,omitempty"`
	Status        string             `json:"status"`
	Profile       *ProfileResponse   `json:"profile"`
	Placement     *PlacementResponse `json:"placement,omitempty"`
}

// FromStudent maps a domain student.
func FromStudent(s *domain.Student) *StudentResponse {
	resp := &StudentResponse{
		ID:            s.ID,
		EnrollmentID:  s.EnrollmentID,
		AdmissionDate: formatDate(s.AdmissionDate),
		Status:        string(s.Status),
		Profile:       FromProfile(s.Profile),
	}
	if s.Placement != nil {
		resp.Placement = &PlacementResponse{
			LevelID:      s.Placement.LevelID,
			LevelName:    s.Placement.LevelName,
			SectionID:    s.Placement.SectionID,
			SectionName:  s.Placement.SectionName,
			AcademicYear: s.Placement.AcademicYear,
		}
	}
	return resp
}

// FromStudents maps a student list.
func FromStudents(students []*domain.Student) []*StudentResponse {
	out := make([]*StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, FromStudent(s))
	}
	return out
}
