package events

import (
	"time"

	"github.com/edusekai/platform-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn         EventType = "user_logged_in"
	EventUserLoggedOut        EventType = "user_logged_out"
	EventPasswordChanged      EventType = "password_changed"
	EventActiveRoleSwitched   EventType = "active_role_switched"
	EventCredentialsIssued    EventType = "credentials_issued"
	EventPaymentCompleted     EventType = "payment_completed"
	EventOrganizationCreated  EventType = "organization_created"
	EventStudentEnrolled      EventType = "student_enrolled"
	EventStaffMemberOnboarded EventType = "staff_member_onboarded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	OrganizationID string      `json:"organization_id"`
	UserID         *string     `json:"user_id,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// SessionPayload accompanies login, logout and password change events.
type SessionPayload struct {
	Username   string  `json:"username"`
	ActiveRole *string `json:"active_role,omitempty"`
}

// CredentialsIssuedPayload payload.
type CredentialsIssuedPayload struct {
	Kind      domain.CredentialKind `json:"kind"`
	Activated int                   `json:"activated"`
	Failed    int                   `json:"failed"`
}

// PaymentCompletedPayload payload.
type PaymentCompletedPayload struct {
	TransactionUUID string `json:"transaction_uuid"`
	Amount          string `json:"amount"`
	Subdomain       string `json:"subdomain"`
}

// EnrollmentPayload accompanies student and staff onboarding events.
type EnrollmentPayload struct {
	ProfileID string `json:"profile_id"`
	FullName  string `json:"full_name"`
}
