package domain

import "time"

// Gender values accepted on profiles.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Profile holds the personal fields shared by students and staff. UserID is
// nil until portal activation attaches a login identity.
type Profile struct {
	ID             string
	OrganizationID string
	UserID         *string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          *string
	Phone          string
	DateOfBirth    *time.Time
	Gender         Gender
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins the present name parts with single spaces.
func (p *Profile) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}

// Activated reports whether a login identity is attached.
func (p *Profile) Activated() bool {
	return p.UserID != nil && *p.UserID != ""
}
