package domain

import "time"

// PaymentStatus enumerates signup payment states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is a signup transaction awaiting gateway confirmation. The
// registration data rides along until the tenant is provisioned.
type Payment struct {
	ID              string
	TransactionUUID string
	Amount          string
	Status          PaymentStatus

	OrganizationName string
	Subdomain        string
	Username         string
	Email            string
	Phone            string
	Password         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
