package dto

import (
	"time"

	"github.com/edusekai/platform-api/internal/domain"
)

// ProfileResponse is the shared personal-detail shape.
type ProfileResponse struct {
	ID          string  `json:"id"`
	UserID      *string `json:"user_id,omitempty"`
	FirstName   string  `json:"first_name"`
	MiddleName  string  `json:"middle_name,omitempty"`
	LastName    string  `json:"last_name"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      string  `json:"gender"`
	Address     string  `json:"address,omitempty"`
	Activated   bool    `json:"activated"`
}

// FromProfile maps a domain profile.
func FromProfile(p *domain.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		FirstName:   p.FirstName,
		MiddleName:  p.MiddleName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: formatDate(p.DateOfBirth),
		Gender:      string(p.Gender),
		Address:     p.Address,
		Activated:   p.Activated(),
	}
}

// OrganizationResponse is the public tenant shape.
type OrganizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// FromOrganization maps a domain organization.
func FromOrganization(o *domain.Organization) *OrganizationResponse {
	if o == nil {
		return nil
	}
	return &OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Subdomain: o.Subdomain,
		Address:   o.Address,
		Phone:     o.Phone,
		Email:     o.Email,
		IsActive:  o.IsActive,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
