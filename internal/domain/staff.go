package domain

import "time"

// StaffMember holds the employment record attached to a profile.
type StaffMember struct {
	ID              string
	Profile         *Profile
	EmployeeID      string
	Designation     string
	Department      string
	JoiningDate     *time.Time
	IsActive        bool
	Qualification   string
	ExperienceYears int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Instructor specializes a staff member with teaching-specific data.
type Instructor struct {
	ID            string
	StaffMemberID string
	Staff         *StaffMember
	Specialization string
	LicenseNumber  string
	Bio            string
}
