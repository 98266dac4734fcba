package domain

import "time"

// CredentialKind tells which record a pending credential belongs to.
type CredentialKind string

const (
	CredentialKindStudent    CredentialKind = "student"
	CredentialKindStaff      CredentialKind = "staff"
	CredentialKindInstructor CredentialKind = "instructor"
)

// PendingCredential is an issued login whose initial password has not been
// changed by its owner yet. Records leave the distribution list when the
// owner completes the mandatory password change.
type PendingCredential struct {
	UserID          string
	Username        string
	InitialPassword string
	FullName        string
	Kind            CredentialKind
	IssuedAt        time.Time
}
