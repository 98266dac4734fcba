package domain

import "time"

// Program is a broad academic stream, e.g. High School or A-Levels.
type Program struct {
	ID          string
	Name        string
	Code        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcademicLevel is a horizontal level within a program. Levels are strictly
// ordered by Order within their program.
type AcademicLevel struct {
	ID        string
	ProgramID string
	Name      string
	Order     int
}

// Section is a capacity-bounded grouping of students within exactly one level.
type Section struct {
	ID       string
	LevelID  string
	Name     string
	Capacity int
}

// Subject is a credit-bearing course offered at a level.
type Subject struct {
	ID          string
	LevelID     string
	Name        string
	Code        string
	Credits     float64
	IsElective  bool
	Description string
}

// TeachingAssignment binds an instructor to a section and subject. A section
// has at most one assignment per subject.
type TeachingAssignment struct {
	ID           string
	SectionID    string
	SubjectID    string
	InstructorID *string
}
