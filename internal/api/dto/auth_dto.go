package dto

import "time"

// LoginRequest payload for tenant login. Identifier accepts the username or
// the email address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RefreshRequest payload for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest payload for the mandatory and voluntary change flows.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SwitchRoleRequest payload for pinning the active role.
type SwitchRoleRequest struct {
	RoleSlug string `json:"role_slug"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// SessionResponse is the resolved session for the current tenant.
type SessionResponse struct {
	UserID              string           `json:"user_id"`
	Username            string           `json:"username"`
	Email               *string          `json:"email,omitempty"`
	NeedsPasswordChange bool             `json:"needs_password_change"`
	Roles               []string         `json:"roles"`
	ActiveRole          string           `json:"active_role"`
	Permissions         []string         `json:"permissions"`
	Profile             *ProfileResponse `json:"profile,omitempty"`
}
