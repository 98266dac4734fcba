package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced before any hashing or storage happens.
const MinPasswordLength = 8

// ErrPasswordTooShort is returned before any state change occurs.
var ErrPasswordTooShort = errors.New("a valid password of at least 8 characters is required")

// ErrPasswordMismatch is returned when a confirmation does not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ValidateNewPassword checks the minimum length and the confirmation match.
func ValidateNewPassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
