package dto

import "github.com/edusekai/platform-api/internal/domain"

// StaffResponse is the staff list/detail shape.
type StaffResponse struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employee_id"`
	Designation     string           `json:"designation"`
	Department      string           `json:"department,omitempty"`
	JoiningDate     *string          `json:"joining_date,omitempty"`
	IsActive        bool             `json:"is_active"`
	Qualification   string           `json:"qualification,omitempty"`
	ExperienceYears int              `json:"experience_years"`
	Profile         *ProfileResponse `json:"profile"`
}

// FromStaff maps a domain staff member.
func FromStaff(s *domain.StaffMember) *StaffResponse {
	return &StaffResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		Designation:     s.Designation,
		Department:      s.Department,
		JoiningDate:     formatDate(s.JoiningDate),
		IsActive:        s.IsActive,
		Qualification:   s.Qualification,
		ExperienceYears: s.ExperienceYears,
		Profile:         FromProfile(s.Profile),
	}
}

// FromStaffList maps a staff list.
func FromStaffList(staff []*domain.StaffMember) []*StaffResponse {
	out := make([]*StaffResponse, 0, len(staff))
	for _, s := range staff {
		out = append(out, FromStaff(s))
	}
	return out
}

// InstructorResponse is the teaching-subset shape.
type InstructorResponse struct {
	ID             string         `json:"id"`
	StaffMemberID  string         `json:"staff_member_id"`
	Specialization string         `json:"specialization,omitempty"`
	LicenseNumber  string         `json:"license_number,omitempty"`
	Bio            string         `json:"bio,omitempty"`
	Staff          *StaffResponse `json:"staff,omitempty"`
}

// FromInstructor maps a domain instructor.
func FromInstructor(i *domain.Instructor) *InstructorResponse {
	resp := &InstructorResponse{
		ID:             i.ID,
		StaffMemberID:  i.StaffMemberID,
		Specialization: i.Specialization,
		LicenseNumber:  i.LicenseNumber,
		Bio:            i.Bio,
	}
	if i.Staff != nil {
		resp.Staff = FromStaff(i.Staff)
	}
	return resp
}

// FromInstructors maps an instructor list.
func FromInstructors(instructors []*domain.Instructor) []*InstructorResponse {
	out := make([]*InstructorResponse, 0, len(instructors))
	for _, i := range instructors {
		out = append(out, FromInstructor(i))
	}
	return out
}

// PendingCredentialResponse is one distribution-list row.
type PendingCredentialResponse struct {
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	InitialPassword string `json:"initial_password"`
	FullName        string `json:"full_name"`
	Kind            string `json:"kind"`
	IssuedAt        string `json:"issued_at"`
}

// FromPendingCredentials maps the distribution list.
func FromPendingCredentials(creds []*domain.PendingCredential) []PendingCredentialResponse {
	out := make([]PendingCredentialResponse, 0, len(creds))
	for _, c := range creds {
		out = append(out, PendingCredentialResponse{
			UserID:          c.UserID,
			Username:        c.Username,
			InitialPassword: c.InitialPassword,
			FullName:        c.FullName,
			Kind:            string(c.Kind),
			IssuedAt:        c.IssuedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}
