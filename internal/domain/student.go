package domain

import "time"

// StudentStatus enumerates enrollment lifecycle states.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusGraduated StudentStatus = "graduated"
	StudentStatusWithdrawn StudentStatus = "withdrawn"
)

// Student is the academic record attached to a profile.
type Student struct {
	ID            string
	Profile       *Profile
	EnrollmentID  string
	AdmissionDate *time.Time
	Status        StudentStatus
	// Placement is the current level/section enrollment, when one exists.
	Placement *StudentPlacement
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudentPlacement tracks which level and section a student occupies for an
// academic year.
type StudentPlacement struct {
	ID           string
	StudentID    string
	LevelID      string
	LevelName    string
	SectionID    *string
	SectionName  string
	AcademicYear string
	IsCurrent    bool
}

// AcademicHistory records previous schooling.
type AcademicHistory struct {
	ID              string
	StudentID       string
	PreviousSchool  string
	LastGradePassed string
	CompletionYear  *int
	Remarks         string
}

// Guardian is a parent or guardian linked to a student.
type Guardian struct {
	ID         string
	StudentID  string
	FirstName  string
	LastName   string
	Phone      string
	Gender     Gender
	Occupation string
	Relation   string
	IsPrimary  bool
}
