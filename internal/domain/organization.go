package domain

import "time"

// Organization is one tenant institution, addressed by a unique subdomain.
type Organization struct {
	ID        string
	Name      string
	Subdomain string
	Address   string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InstitutionProfile carries the editable public details of a tenant shown
// on the institution settings screen.
type InstitutionProfile struct {
	ID             string
	OrganizationID string
	DisplayName    string
	Motto          string
	Address        string
	Phone          string
	Email          string
	Website        string
	EstablishedAt  *time.Time
	UpdatedAt      time.Time
}
