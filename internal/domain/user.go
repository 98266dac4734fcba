package domain

import "time"

// User is a platform-wide login identity. Tenant membership is expressed
// through UserRole rows, never on the user itself.
type User struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string
	IsActive     bool

	// NeedsPasswordChange locks the account behind a mandatory password
	// change; set when credentials are issued administratively.
	NeedsPasswordChange bool
	// InitialPasswordDisplay holds the generated initial password for the
	// distribution list. Cleared on the owner's first password change.
	InitialPasswordDisplay *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionUser is the resolved session payload for the current tenant:
// identity, held roles, the active role and its permission codenames.
type SessionUser struct {
	User        *User
	Roles       []string
	ActiveRole  string
	Permissions []string
	Profile     *Profile
}
